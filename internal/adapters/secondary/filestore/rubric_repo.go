package filestore

import (
	"context"
	"fmt"

	"essay-grader-service/internal/core/domain"
	ports "essay-grader-service/internal/core/ports/output"
)

const rubricsFile = "rubrics.json"

type rubricRepo struct {
	store *Store
}

// NewRubricRepository keeps rubrics in one JSON array ordered by first Put.
func NewRubricRepository(store *Store) ports.RubricRepository {
	return &rubricRepo{store: store}
}

func (r *rubricRepo) Put(ctx context.Context, rubric *domain.Rubric) error {
	path := r.store.path(rubricsFile)
	return r.store.withLock(ctx, path, func() error {
		all, err := r.load()
		if err != nil {
			return err
		}
		replaced := false
		for i, existing := range all {
			if existing.Name == rubric.Name {
				all[i] = rubric
				replaced = true
				break
			}
		}
		if !replaced {
			all = append(all, rubric)
		}
		if err := writeJSON(path, all); err != nil {
			return fmt.Errorf("write rubrics: %w", err)
		}
		return nil
	})
}

func (r *rubricRepo) Get(ctx context.Context, name string) (*domain.Rubric, error) {
	all, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, rubric := range all {
		if rubric.Name == name {
			return rubric, nil
		}
	}
	return nil, domain.ErrRubricNotFound
}

func (r *rubricRepo) List(ctx context.Context) ([]*domain.Rubric, error) {
	return r.load()
}

func (r *rubricRepo) load() ([]*domain.Rubric, error) {
	all := []*domain.Rubric{}
	if err := readJSON(r.store.path(rubricsFile), &all); err != nil {
		if isNotExist(err) {
			return []*domain.Rubric{}, nil
		}
		return nil, fmt.Errorf("read rubrics: %w", err)
	}
	return all, nil
}
