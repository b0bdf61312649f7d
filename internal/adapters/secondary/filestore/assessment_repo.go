package filestore

import (
	"context"
	"fmt"

	"essay-grader-service/internal/core/domain"
	ports "essay-grader-service/internal/core/ports/output"
)

const assessmentsFile = "assessments.json"

type assessmentRepo struct {
	store *Store
}

// NewAssessmentRepository keeps every assessment in one JSON array.
func NewAssessmentRepository(store *Store) ports.AssessmentRepository {
	return &assessmentRepo{store: store}
}

func (r *assessmentRepo) Append(ctx context.Context, a *domain.Assessment) error {
	path := r.store.path(assessmentsFile)
	return r.store.withLock(ctx, path, func() error {
		var all []*domain.Assessment
		if err := readJSON(path, &all); err != nil && !isNotExist(err) {
			return fmt.Errorf("read assessments: %w", err)
		}
		all = append(all, a)
		if err := writeJSON(path, all); err != nil {
			return fmt.Errorf("write assessments: %w", err)
		}
		return nil
	})
}

func (r *assessmentRepo) List(ctx context.Context) ([]*domain.Assessment, error) {
	all := []*domain.Assessment{}
	if err := readJSON(r.store.path(assessmentsFile), &all); err != nil {
		if isNotExist(err) {
			return []*domain.Assessment{}, nil
		}
		return nil, fmt.Errorf("read assessments: %w", err)
	}
	return all, nil
}
