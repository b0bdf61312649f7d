package ports

import (
	"context"

	"essay-grader-service/internal/core/domain"
)

// AssessmentRepository is an append-only collection. Names are not unique and
// List returns records in insertion order.
type AssessmentRepository interface {
	Append(ctx context.Context, a *domain.Assessment) error
	List(ctx context.Context) ([]*domain.Assessment, error)
}

// RubricRepository is keyed by rubric name; Put replaces an existing rubric.
type RubricRepository interface {
	Put(ctx context.Context, r *domain.Rubric) error
	Get(ctx context.Context, name string) (*domain.Rubric, error)
	List(ctx context.Context) ([]*domain.Rubric, error)
}

// GradeRepository is keyed by (assessment, essay file) with last-writer-wins.
type GradeRepository interface {
	Put(ctx context.Context, assessment string, g *domain.GradeRecord) error
	Get(ctx context.Context, assessment, essayFile string) (*domain.GradeRecord, error)
	ListKeys(ctx context.Context, assessment string) ([]string, error)
}

// HealthChecker is implemented by stores that can verify their backend.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
