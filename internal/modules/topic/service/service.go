package topic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"newsagency.com/newsroom/internal/entity"
	"newsagency.com/newsroom/internal/modules/topic/dto"
	"newsagency.com/newsroom/internal/modules/topic/repository"
	"newsagency.com/newsroom/pkg/apperror"
	commonDto "newsagency.com/newsroom/pkg/dto"
	"newsagency.com/newsroom/pkg/pagination"
	"newsagency.com/newsroom/pkg/validator"
)

type TopicService interface {
	ListTopics(ctx context.Context, filter commonDto.TopicFilter, page int) (*dto.TopicListResponse, error)
	GetTopic(ctx context.Context, id uint) (*entity.Topic, error)
	CreateTopic(ctx context.Context, req dto.TopicForm) (*entity.Topic, error)
	UpdateTopic(ctx context.Context, id uint, req dto.TopicForm) (*entity.Topic, error)
	DeleteTopic(ctx context.Context, id uint) error
}

type topicService struct {
	repo repository.TopicRepository
}

func NewTopicService(repo repository.TopicRepository) TopicService {
	return &topicService{repo: repo}
}

func (s *topicService) ListTopics(ctx context.Context, filter commonDto.TopicFilter, page int) (*dto.TopicListResponse, error) {
	total, err := s.repo.Count(ctx, filter.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to count topics: %w", err)
	}

	meta := pagination.NewMeta(page, total, pagination.PageSize)
	topics, err := s.repo.FindAll(ctx, filter.Name, meta.Offset(), meta.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}

	return &dto.TopicListResponse{Data: topics, Meta: meta}, nil
}

func (s *topicService) GetTopic(ctx context.Context, id uint) (*entity.Topic, error) {
	topic, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("topic not found: %w", apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}
	return topic, nil
}

func (s *topicService) CreateTopic(ctx context.Context, req dto.TopicForm) (*entity.Topic, error) {
	name, err := cleanName(req.Name)
	if err != nil {
		return nil, err
	}

	topic := &entity.Topic{Name: name}
	if err := s.repo.Create(ctx, topic); err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}
	return topic, nil
}

func (s *topicService) UpdateTopic(ctx context.Context, id uint, req dto.TopicForm) (*entity.Topic, error) {
	topic, err := s.GetTopic(ctx, id)
	if err != nil {
		return nil, err
	}

	name, err := cleanName(req.Name)
	if err != nil {
		return nil, err
	}

	topic.Name = name
	if err := s.repo.Update(ctx, topic); err != nil {
		return nil, fmt.Errorf("failed to update topic: %w", err)
	}
	return topic, nil
}

func (s *topicService) DeleteTopic(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("topic not found: %w", apperror.ErrNotFound)
		}
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	return nil
}

func cleanName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", validator.FormErrors{"name": "This field is required."}
	}
	return name, nil
}
