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

type gradeRepo struct {
	pool *pgxpool.Pool
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(pool *pgxpool.Pool) ports.GradeRepository {
	return &gradeRepo{pool: pool}
}

// Put upserts in one statement, so concurrent writers to a key serialize on
// the row and the last one wins.
func (r *gradeRepo) Put(ctx context.Context, assessment string, g *domain.GradeRecord) error {
	query := `
		INSERT INTO grade (assessment_name, essay_file, grades, comments, graded_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (assessment_name, essay_file)
		DO UPDATE SET grades = EXCLUDED.grades, comments = EXCLUDED.comments, graded_at = EXCLUDED.graded_at
	`
	_, err := r.pool.Exec(ctx, query, assessment, g.EssayFile, g.Grades, g.Comments, g.GradedAt)
	if err != nil {
		return fmt.Errorf("upsert grade: %w", err)
	}
	return nil
}

func (r *gradeRepo) Get(ctx context.Context, assessment, essayFile string) (*domain.GradeRecord, error) {
	query := `
		SELECT essay_file, grades, comments, graded_at
		FROM grade
		WHERE assessment_name = $1 AND essay_file = $2
	`
	var g domain.GradeRecord
	err := r.pool.QueryRow(ctx, query, assessment, essayFile).Scan(&g.EssayFile, &g.Grades, &g.Comments, &g.GradedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGradeNotFound
		}
		return nil, fmt.Errorf("get grade: %w", err)
	}
	return &g, nil
}

func (r *gradeRepo) ListKeys(ctx context.Context, assessment string) ([]string, error) {
	query := `SELECT essay_file FROM grade WHERE assessment_name = $1 ORDER BY essay_file`
	rows, err := r.pool.Query(ctx, query, assessment)
	if err != nil {
		return nil, fmt.Errorf("query grade keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan grade key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
