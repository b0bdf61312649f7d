package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"essay-grader-service/internal/core/domain"
	ports "essay-grader-service/internal/core/ports/output"
)

type GradeRepo struct{ *Repo }

func NewGradeRepository(db *sql.DB) ports.GradeRepository {
	return &GradeRepo{NewRepo(db)}
}

func (r *GradeRepo) Put(ctx context.Context, assessment string, g *domain.GradeRecord) error {
	grades, err := json.Marshal(g.Grades)
	if err != nil {
		return fmt.Errorf("encode grades: %w", err)
	}
	q := r.SQ.Insert("grades").
		Columns("assessment", "essay_file", "grades", "comments", "graded_at").
		Values(assessment, g.EssayFile, string(grades), g.Comments, g.GradedAt.UTC().Format(time.RFC3339Nano)).
		Suffix("ON CONFLICT(assessment, essay_file) DO UPDATE SET grades = excluded.grades, comments = excluded.comments, graded_at = excluded.graded_at")
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("upsert grade: %w", err)
	}
	return nil
}

func (r *GradeRepo) Get(ctx context.Context, assessment, essayFile string) (*domain.GradeRecord, error) {
	q := r.SQ.Select("essay_file", "grades", "comments", "graded_at").From("grades").
		Where(sq.Eq{"assessment": assessment, "essay_file": essayFile})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var g domain.GradeRecord
	var grades, graded string
	err = r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&g.EssayFile, &grades, &g.Comments, &graded)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGradeNotFound
		}
		return nil, fmt.Errorf("get grade: %w", err)
	}
	if err := json.Unmarshal([]byte(grades), &g.Grades); err != nil {
		return nil, fmt.Errorf("decode grades: %w", err)
	}
	if g.GradedAt, err = time.Parse(time.RFC3339Nano, graded); err != nil {
		return nil, fmt.Errorf("decode grade %q graded_at: %w", g.EssayFile, err)
	}
	return &g, nil
}

func (r *GradeRepo) ListKeys(ctx context.Context, assessment string) ([]string, error) {
	q := r.SQ.Select("essay_file").From("grades").
		Where(sq.Eq{"assessment": assessment}).OrderBy("essay_file")
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
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
