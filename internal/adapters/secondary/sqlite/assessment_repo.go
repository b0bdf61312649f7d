package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"essay-grader-service/internal/core/domain"
	ports "essay-grader-service/internal/core/ports/output"
)

type AssessmentRepo struct{ *Repo }

func NewAssessmentRepository(db *sql.DB) ports.AssessmentRepository {
	return &AssessmentRepo{NewRepo(db)}
}

func (r *AssessmentRepo) Append(ctx context.Context, a *domain.Assessment) error {
	q := r.SQ.Insert("assessments").
		Columns("name", "folder", "rubric", "description", "created_at").
		Values(a.Name, a.Folder, a.Rubric, a.Description, a.CreatedAt.UTC().Format(time.RFC3339Nano))
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	return nil
}

func (r *AssessmentRepo) List(ctx context.Context) ([]*domain.Assessment, error) {
	q := r.SQ.Select("name", "folder", "rubric", "description", "created_at").
		From("assessments").OrderBy("id")
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	out := []*domain.Assessment{}
	for rows.Next() {
		var a domain.Assessment
		var created string
		if err := rows.Scan(&a.Name, &a.Folder, &a.Rubric, &a.Description, &created); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		if a.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("decode assessment %q created_at: %w", a.Name, err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
