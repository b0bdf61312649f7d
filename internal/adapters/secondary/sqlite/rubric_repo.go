package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"essay-grader-service/internal/core/domain"
	ports "essay-grader-service/internal/core/ports/output"
)

type RubricRepo struct{ *Repo }

func NewRubricRepository(db *sql.DB) ports.RubricRepository {
	return &RubricRepo{NewRepo(db)}
}

// Put upserts by name. seq keeps the first insertion position so List order
// does not change on overwrite.
func (r *RubricRepo) Put(ctx context.Context, rubric *domain.Rubric) error {
	criteria, err := json.Marshal(rubric.Criteria)
	if err != nil {
		return fmt.Errorf("encode criteria: %w", err)
	}
	q := r.SQ.Insert("rubrics").
		Columns("name", "criteria", "seq").
		Values(rubric.Name, string(criteria), sq.Expr("(SELECT COALESCE(MAX(seq), 0) + 1 FROM rubrics)")).
		Suffix("ON CONFLICT(name) DO UPDATE SET criteria = excluded.criteria")
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("upsert rubric: %w", err)
	}
	return nil
}

func (r *RubricRepo) Get(ctx context.Context, name string) (*domain.Rubric, error) {
	q := r.SQ.Select("name", "criteria").From("rubrics").Where("name = ?", name)
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rubric, err := scanRubric(r.DB.QueryRowContext(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRubricNotFound
		}
		return nil, fmt.Errorf("get rubric: %w", err)
	}
	return rubric, nil
}

func (r *RubricRepo) List(ctx context.Context) ([]*domain.Rubric, error) {
	q := r.SQ.Select("name", "criteria").From("rubrics").OrderBy("seq")
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query rubrics: %w", err)
	}
	defer rows.Close()

	out := []*domain.Rubric{}
	for rows.Next() {
		rubric, err := scanRubric(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rubric: %w", err)
		}
		out = append(out, rubric)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRubric(row scanner) (*domain.Rubric, error) {
	var rubric domain.Rubric
	var criteria string
	if err := row.Scan(&rubric.Name, &criteria); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(criteria), &rubric.Criteria); err != nil {
		return nil, fmt.Errorf("decode criteria: %w", err)
	}
	return &rubric, nil
}
