package service

import (
	"context"
	"fmt"

	newspaperRepo "newsagency.com/newsroom/internal/modules/newspaper/repository"
	redactorRepo "newsagency.com/newsroom/internal/modules/redactor/repository"
	"newsagency.com/newsroom/internal/modules/stat/dto"
	topicRepo "newsagency.com/newsroom/internal/modules/topic/repository"
)

type StatService interface {
	GetHomeStats(ctx context.Context) (*dto.HomeStats, error)
}

type statService struct {
	redactorRepo  redactorRepo.RedactorRepository
	newspaperRepo newspaperRepo.NewspaperRepository
	topicRepo     topicRepo.TopicRepository
}

func NewStatService(
	redactorRepo redactorRepo.RedactorRepository,
	newspaperRepo newspaperRepo.NewspaperRepository,
	topicRepo topicRepo.TopicRepository,
) StatService {
	return &statService{
		redactorRepo:  redactorRepo,
		newspaperRepo: newspaperRepo,
		topicRepo:     topicRepo,
	}
}

func (s *statService) GetHomeStats(ctx context.Context) (*dto.HomeStats, error) {
	redactors, err := s.redactorRepo.Count(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to count redactors: %w", err)
	}
	newspapers, err := s.newspaperRepo.Count(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to count newspapers: %w", err)
	}
	topics, err := s.topicRepo.Count(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to count topics: %w", err)
	}

	return &dto.HomeStats{
		NumRedactors:  redactors,
		NumNewspapers: newspapers,
		NumTopics:     topics,
	}, nil
}
