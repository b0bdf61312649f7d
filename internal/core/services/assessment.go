package services

import (
	"context"

	"essay-grader-service/internal/core/domain"
	"essay-grader-service/internal/core/ports/output"
)

type AssessmentService struct {
	assessmentRepo ports.AssessmentRepository
	rubricRepo     ports.RubricRepository
}

func NewAssessmentService(assessmentRepo ports.AssessmentRepository, rubricRepo ports.RubricRepository) *AssessmentService {
	return &AssessmentService{assessmentRepo: assessmentRepo, rubricRepo: rubricRepo}
}

// Create appends a new assessment. The referenced rubric must exist; duplicate
// assessment names are accepted.
func (s *AssessmentService) Create(ctx context.Context, name, folder, rubric, description string) (*domain.Assessment, error) {
	a, err := domain.NewAssessment(name, folder, rubric, description)
	if err != nil {
		return nil, err
	}
	if _, err := s.rubricRepo.Get(ctx, rubric); err != nil {
		return nil, err
	}
	if err := s.assessmentRepo.Append(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) List(ctx context.Context) ([]*domain.Assessment, error) {
	return s.assessmentRepo.List(ctx)
}

// Get returns the first assessment appended under name.
func (s *AssessmentService) Get(ctx context.Context, name string) (*domain.Assessment, error) {
	all, err := s.assessmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range all {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, domain.ErrAssessmentNotFound
}
