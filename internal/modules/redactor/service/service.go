package redactor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"newsagency.com/newsroom/internal/entity"
	newspaperRepo "newsagency.com/newsroom/internal/modules/newspaper/repository"
	"newsagency.com/newsroom/internal/modules/redactor/dto"
	"newsagency.com/newsroom/internal/modules/redactor/repository"
	"newsagency.com/newsroom/pkg/apperror"
	commonDto "newsagency.com/newsroom/pkg/dto"
	"newsagency.com/newsroom/pkg/pagination"
	"newsagency.com/newsroom/pkg/validator"
)

const (
	usernameTaken = "A user with that username already exists."

	maxYears = math.MaxInt32
)

var maxYearsMessage = fmt.Sprintf("Ensure this value is less than or equal to %d.", maxYears)

type RedactorService interface {
	ListRedactors(ctx context.Context, filter commonDto.RedactorFilter, page int) (*dto.RedactorListResponse, error)
	GetRedactor(ctx context.Context, id uint) (*entity.Redactor, error)
	CreateRedactor(ctx context.Context, req dto.CreateRedactorForm) (*entity.Redactor, error)
	UpdateRedactor(ctx context.Context, id uint, req dto.UpdateRedactorForm) (*entity.Redactor, error)
	DeleteRedactor(ctx context.Context, id uint) error
	ToggleNewspaper(ctx context.Context, redactorID, newspaperID uint) (bool, error)
}

type redactorService struct {
	repo          repository.RedactorRepository
	newspaperRepo newspaperRepo.NewspaperRepository
}

func NewRedactorService(repo repository.RedactorRepository, newspaperRepo newspaperRepo.NewspaperRepository) RedactorService {
	return &redactorService{
		repo:          repo,
		newspaperRepo: newspaperRepo,
	}
}

func (s *redactorService) ListRedactors(ctx context.Context, filter commonDto.RedactorFilter, page int) (*dto.RedactorListResponse, error) {
	total, err := s.repo.Count(ctx, filter.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to count redactors: %w", err)
	}

	meta := pagination.NewMeta(page, total, pagination.PageSize)
	redactors, err := s.repo.FindAll(ctx, filter.Username, meta.Offset(), meta.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list redactors: %w", err)
	}

	return &dto.RedactorListResponse{Data: redactors, Meta: meta}, nil
}

func (s *redactorService) GetRedactor(ctx context.Context, id uint) (*entity.Redactor, error) {
	redactor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("redactor not found: %w", apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get redactor: %w", err)
	}
	return redactor, nil
}

func (s *redactorService) CreateRedactor(ctx context.Context, req dto.CreateRedactorForm) (*entity.Redactor, error) {
	if err := s.ensureUsernameFree(ctx, req.Username, 0); err != nil {
		return nil, err
	}
	if isNumeric(req.Password1) {
		return nil, validator.FormErrors{"password2": "This password is entirely numeric."}
	}
	years, err := parseYears(req.YearsOfExperience)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password1), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	redactor := &entity.Redactor{
		Username:          req.Username,
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		YearsOfExperience: years,
		PasswordHash:      string(hashedPassword),
	}
	if err := s.repo.Create(ctx, redactor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, validator.FormErrors{"username": usernameTaken}
		}
		return nil, fmt.Errorf("failed to create redactor: %w", err)
	}
	return redactor, nil
}

func (s *redactorService) UpdateRedactor(ctx context.Context, id uint, req dto.UpdateRedactorForm) (*entity.Redactor, error) {
	redactor, err := s.GetRedactor(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUsernameFree(ctx, req.Username, redactor.ID); err != nil {
		return nil, err
	}
	years, err := parseYears(req.YearsOfExperience)
	if err != nil {
		return nil, err
	}

	redactor.Username = req.Username
	redactor.FirstName = strings.TrimSpace(req.FirstName)
	redactor.LastName = strings.TrimSpace(req.LastName)
	redactor.YearsOfExperience = years

	if err := s.repo.Update(ctx, redactor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, validator.FormErrors{"username": usernameTaken}
		}
		return nil, fmt.Errorf("failed to update redactor: %w", err)
	}
	return redactor, nil
}

func (s *redactorService) DeleteRedactor(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("redactor not found: %w", apperror.ErrNotFound)
		}
		return fmt.Errorf("failed to delete redactor: %w", err)
	}
	return nil
}

func (s *redactorService) ToggleNewspaper(ctx context.Context, redactorID, newspaperID uint) (bool, error) {
	if _, err := s.GetRedactor(ctx, redactorID); err != nil {
		return false, err
	}

	if _, err := s.newspaperRepo.FindByID(ctx, newspaperID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("newspaper not found: %w", apperror.ErrNotFound)
		}
		return false, fmt.Errorf("failed to get newspaper: %w", err)
	}

	assigned, err := s.repo.ToggleNewspaper(ctx, redactorID, newspaperID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle newspaper: %w", err)
	}
	return assigned, nil
}

// ensureUsernameFree fails with a field error when another redactor than
// ownerID already uses username.
func (s *redactorService) ensureUsernameFree(ctx context.Context, username string, ownerID uint) error {
	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check username: %w", err)
	}
	if existing.ID != ownerID {
		return validator.FormErrors{"username": usernameTaken}
	}
	return nil
}

// parseYears reads the optional years_of_experience input; blank means zero.
func parseYears(raw string) (uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	years, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, validator.FormErrors{"years_of_experience": maxYearsMessage}
		}
		return 0, validator.FormErrors{"years_of_experience": "Enter a whole number."}
	}
	if years > maxYears {
		return 0, validator.FormErrors{"years_of_experience": maxYearsMessage}
	}
	return uint(years), nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
