package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"essay-grader-service/internal/core/domain"
	ports "essay-grader-service/internal/core/ports/output"
)

type assessmentRepo struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates a new assessment repository
func NewAssessmentRepository(pool *pgxpool.Pool) ports.AssessmentRepository {
	return &assessmentRepo{pool: pool}
}

func (r *assessmentRepo) Append(ctx context.Context, a *domain.Assessment) error {
	query := `
		INSERT INTO assessment (name, folder, rubric, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query, a.Name, a.Folder, a.Rubric, a.Description, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	return nil
}

func (r *assessmentRepo) List(ctx context.Context) ([]*domain.Assessment, error) {
	query := `
		SELECT name, folder, rubric, description, created_at
		FROM assessment
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	out := []*domain.Assessment{}
	for rows.Next() {
		var a domain.Assessment
		if err := rows.Scan(&a.Name, &a.Folder, &a.Rubric, &a.Description, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
