package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"newsagency.com/newsroom/internal/modules/auth/dto"
	redactorRepo "newsagency.com/newsroom/internal/modules/redactor/repository"
	visit "newsagency.com/newsroom/internal/modules/visit/service"
	"newsagency.com/newsroom/pkg/apperror"
	"newsagency.com/newsroom/pkg/validator"
)

const invalidLogin = "Please enter a correct username and password. Note that both fields may be case-sensitive."

type AuthService interface {
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Authenticate(ctx context.Context, token string) (*dto.Session, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	repo     redactorRepo.RedactorRepository
	visits   visit.VisitService
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(repo redactorRepo.RedactorRepository, visits visit.VisitService, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		repo:     repo,
		visits:   visits,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	redactor, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validator.FormErrors{validator.NonFieldErrors: invalidLogin}
		}
		return nil, fmt.Errorf("failed to find redactor: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(redactor.PasswordHash), []byte(input.Password)); err != nil {
		return nil, validator.FormErrors{validator.NonFieldErrors: invalidLogin}
	}

	sessionID := uuid.NewString()
	token, err := s.generateToken(redactor.ID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
		SessionID:   sessionID,
		Redactor:    redactor,
	}, nil
}

// Authenticate resolves a session token to its redactor. Deleted redactors and
// bad or expired tokens yield apperror.ErrUnauthorized.
func (s *authService) Authenticate(ctx context.Context, token string) (*dto.Session, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	redactorID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid token subject: %w", apperror.ErrUnauthorized)
	}

	redactor, err := s.repo.FindAccount(ctx, uint(redactorID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("redactor no longer exists: %w", apperror.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to load redactor: %w", err)
	}

	return &dto.Session{ID: claims.ID, Redactor: redactor}, nil
}

// Logout flushes the session state kept outside the token. Tokens that no
// longer parse have nothing to flush.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	return s.visits.Reset(ctx, claims.ID)
}

func (s *authService) generateToken(redactorID uint, sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(redactorID), 10),
		ID:        sessionID,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *authService) parseToken(tokenString string) (*jwt.RegisteredClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("missing session token: %w", apperror.ErrUnauthorized)
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token: %w", apperror.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ID == "" {
		return nil, fmt.Errorf("invalid token claims: %w", apperror.ErrUnauthorized)
	}
	return claims, nil
}
