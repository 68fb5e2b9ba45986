package repository

import "context"

// Store holds the per-session visit counter. A session without a stored
// value has zero visits.
type Store interface {
	Get(ctx context.Context, sessionID string) (int, error)
	Set(ctx context.Context, sessionID string, visits int) error
	Delete(ctx context.Context, sessionID string) error
}
