package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"essay-grader-service/internal/core/domain"
	ports "essay-grader-service/internal/core/ports/output"
)

type rubricRepo struct {
	pool *pgxpool.Pool
}

// NewRubricRepository creates a new rubric repository
func NewRubricRepository(pool *pgxpool.Pool) ports.RubricRepository {
	return &rubricRepo{pool: pool}
}

func (r *rubricRepo) Put(ctx context.Context, rubric *domain.Rubric) error {
	query := `
		INSERT INTO rubric (name, criteria)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET criteria = EXCLUDED.criteria
	`
	if _, err := r.pool.Exec(ctx, query, rubric.Name, rubric.Criteria); err != nil {
		return fmt.Errorf("upsert rubric: %w", err)
	}
	return nil
}

func (r *rubricRepo) Get(ctx context.Context, name string) (*domain.Rubric, error) {
	query := `SELECT name, criteria FROM rubric WHERE name = $1`
	var rubric domain.Rubric
	err := r.pool.QueryRow(ctx, query, name).Scan(&rubric.Name, &rubric.Criteria)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRubricNotFound
		}
		return nil, fmt.Errorf("get rubric: %w", err)
	}
	return &rubric, nil
}

func (r *rubricRepo) List(ctx context.Context) ([]*domain.Rubric, error) {
	query := `SELECT name, criteria FROM rubric ORDER BY created_at, name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query rubrics: %w", err)
	}
	defer rows.Close()

	out := []*domain.Rubric{}
	for rows.Next() {
		var rubric domain.Rubric
		if err := rows.Scan(&rubric.Name, &rubric.Criteria); err != nil {
			return nil, fmt.Errorf("scan rubric: %w", err)
		}
		out = append(out, &rubric)
	}
	return out, rows.Err()
}
