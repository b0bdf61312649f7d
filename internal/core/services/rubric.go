package services

import (
	"context"

	"essay-grader-service/internal/core/domain"
	"essay-grader-service/internal/core/ports/output"
)

type RubricService struct {
	rubricRepo ports.RubricRepository
}

func NewRubricService(rubricRepo ports.RubricRepository) *RubricService {
	return &RubricService{rubricRepo: rubricRepo}
}

// Put validates and stores a rubric. An existing rubric with the same name is
// replaced.
func (s *RubricService) Put(ctx context.Context, rubric *domain.Rubric) (*domain.Rubric, error) {
	if err := rubric.Validate(); err != nil {
		return nil, err
	}
	if err := s.rubricRepo.Put(ctx, rubric); err != nil {
		return nil, err
	}
	return s.rubricRepo.Get(ctx, rubric.Name)
}

func (s *RubricService) Get(ctx context.Context, name string) (*domain.Rubric, error) {
	return s.rubricRepo.Get(ctx, name)
}

func (s *RubricService) List(ctx context.Context) ([]*domain.Rubric, error) {
	return s.rubricRepo.List(ctx)
}
