package newspaper

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"newsagency.com/newsroom/internal/entity"
	"newsagency.com/newsroom/internal/modules/newspaper/dto"
	"newsagency.com/newsroom/internal/modules/newspaper/repository"
	redactorRepo "newsagency.com/newsroom/internal/modules/redactor/repository"
	topicRepo "newsagency.com/newsroom/internal/modules/topic/repository"
	"newsagency.com/newsroom/pkg/apperror"
	commonDto "newsagency.com/newsroom/pkg/dto"
	"newsagency.com/newsroom/pkg/pagination"
	"newsagency.com/newsroom/pkg/validator"
)

const invalidChoice = "Select a valid choice. That choice is not one of the available choices."

type NewspaperService interface {
	ListNewspapers(ctx context.Context, filter commonDto.NewspaperFilter, page int) (*dto.NewspaperListResponse, error)
	GetNewspaper(ctx context.Context, id uint) (*entity.Newspaper, error)
	FormChoices(ctx context.Context) (*dto.FormChoices, error)
	CreateNewspaper(ctx context.Context, req dto.NewspaperForm) (*entity.Newspaper, error)
	UpdateNewspaper(ctx context.Context, id uint, req dto.NewspaperForm) (*entity.Newspaper, error)
	DeleteNewspaper(ctx context.Context, id uint) error
}

type newspaperService struct {
	repo         repository.NewspaperRepository
	topicRepo    topicRepo.TopicRepository
	redactorRepo redactorRepo.RedactorRepository
	sanitizer    *bluemonday.Policy
}

func NewNewspaperService(
	repo repository.NewspaperRepository,
	topicRepo topicRepo.TopicRepository,
	redactorRepo redactorRepo.RedactorRepository,
) NewspaperService {
	return &newspaperService{
		repo:         repo,
		topicRepo:    topicRepo,
		redactorRepo: redactorRepo,
		sanitizer:    bluemonday.UGCPolicy(),
	}
}

func (s *newspaperService) ListNewspapers(ctx context.Context, filter commonDto.NewspaperFilter, page int) (*dto.NewspaperListResponse, error) {
	total, err := s.repo.Count(ctx, filter.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to count newspapers: %w", err)
	}

	meta := pagination.NewMeta(page, total, pagination.PageSize)
	newspapers, err := s.repo.FindAll(ctx, filter.Title, meta.Offset(), meta.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list newspapers: %w", err)
	}

	return &dto.NewspaperListResponse{Data: newspapers, Meta: meta}, nil
}

func (s *newspaperService) GetNewspaper(ctx context.Context, id uint) (*entity.Newspaper, error) {
	newspaper, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("newspaper not found: %w", apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get newspaper: %w", err)
	}
	return newspaper, nil
}

func (s *newspaperService) FormChoices(ctx context.Context) (*dto.FormChoices, error) {
	topics, err := s.topicRepo.FindAll(ctx, "", 0, -1)
	if err != nil {
		return nil, fmt.Errorf("failed to load topics: %w", err)
	}
	redactors, err := s.redactorRepo.FindAll(ctx, "", 0, -1)
	if err != nil {
		return nil, fmt.Errorf("failed to load redactors: %w", err)
	}
	return &dto.FormChoices{Topics: topics, Redactors: redactors}, nil
}

func (s *newspaperService) CreateNewspaper(ctx context.Context, req dto.NewspaperForm) (*entity.Newspaper, error) {
	newspaper := &entity.Newspaper{}
	publisherIDs, err := s.apply(ctx, newspaper, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, newspaper, publisherIDs); err != nil {
		return nil, fmt.Errorf("failed to create newspaper: %w", err)
	}
	return newspaper, nil
}

func (s *newspaperService) UpdateNewspaper(ctx context.Context, id uint, req dto.NewspaperForm) (*entity.Newspaper, error) {
	newspaper, err := s.GetNewspaper(ctx, id)
	if err != nil {
		return nil, err
	}

	publisherIDs, err := s.apply(ctx, newspaper, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, newspaper, publisherIDs); err != nil {
		return nil, fmt.Errorf("failed to update newspaper: %w", err)
	}
	return newspaper, nil
}

func (s *newspaperService) DeleteNewspaper(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("newspaper not found: %w", apperror.ErrNotFound)
		}
		return fmt.Errorf("failed to delete newspaper: %w", err)
	}
	return nil
}

// apply validates the form against the stored topics and redactors and copies
// it onto newspaper. It returns the deduplicated publisher ids.
func (s *newspaperService) apply(ctx context.Context, newspaper *entity.Newspaper, req dto.NewspaperForm) ([]uint, error) {
	formErrs := validator.FormErrors{}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		formErrs["title"] = "This field is required."
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(req.Content))
	if content == "" {
		formErrs["content"] = "This field is required."
	}

	var topic *entity.Topic
	if topicID, ok := parseID(req.Topic); ok {
		var err error
		topic, err = s.topicRepo.FindByID(ctx, topicID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			formErrs["topic"] = invalidChoice
		case err != nil:
			return nil, fmt.Errorf("failed to load topic: %w", err)
		}
	} else {
		formErrs["topic"] = invalidChoice
	}

	requested := make([]uint, 0, len(req.Publishers))
	for _, raw := range req.Publishers {
		id, ok := parseID(raw)
		if !ok {
			formErrs["publishers"] = fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", strings.TrimSpace(raw))
			break
		}
		requested = append(requested, id)
	}

	publisherIDs := unique(requested)
	publishers, err := s.redactorRepo.FindByIDs(ctx, publisherIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load publishers: %w", err)
	}
	if _, bad := formErrs["publishers"]; !bad && len(publishers) != len(publisherIDs) {
		formErrs["publishers"] = missingPublisherMessage(publisherIDs, publishers)
	}

	if len(formErrs) > 0 {
		return nil, formErrs
	}

	newspaper.Title = title
	newspaper.Content = content
	newspaper.TopicID = topic.ID
	newspaper.Topic = topic
	newspaper.Publishers = make([]entity.Redactor, 0, len(publishers))
	for _, p := range publishers {
		newspaper.Publishers = append(newspaper.Publishers, *p)
	}
	return publisherIDs, nil
}

// parseID accepts the decimal id of a stored row; zero never is one.
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func unique(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func missingPublisherMessage(requested []uint, found []*entity.Redactor) string {
	known := make(map[uint]struct{}, len(found))
	for _, r := range found {
		known[r.ID] = struct{}{}
	}
	for _, id := range requested {
		if _, ok := known[id]; !ok {
			return fmt.Sprintf("Select a valid choice. %d is not one of the available choices.", id)
		}
	}
	return invalidChoice
}
