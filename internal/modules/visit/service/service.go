package visit

import (
	"context"
	"fmt"

	"newsagency.com/newsroom/internal/modules/visit/repository"
)

type VisitService interface {
	RegisterVisit(ctx context.Context, sessionID string) (int, error)
	Reset(ctx context.Context, sessionID string) error
}

type visitService struct {
	store repository.Store
}

func NewVisitService(store repository.Store) VisitService {
	return &visitService{store: store}
}

// RegisterVisit counts one more home page view for the session and returns
// the new total. The read and the write are separate store calls, so two
// concurrent views of one session may be counted once.
func (s *visitService) RegisterVisit(ctx context.Context, sessionID string) (int, error) {
	current, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to read visit counter: %w", err)
	}

	next := current + 1
	if err := s.store.Set(ctx, sessionID, next); err != nil {
		return 0, fmt.Errorf("failed to write visit counter: %w", err)
	}
	return next, nil
}

func (s *visitService) Reset(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to reset visit counter: %w", err)
	}
	return nil
}
