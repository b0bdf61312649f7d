package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essay-grader-service/internal/adapters/secondary/storetest"
	"essay-grader-service/internal/core/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAssessmentRepo_AppendAndList(t *testing.T) {
	repo := NewAssessmentRepository(openTestDB(t))
	ctx := context.Background()
	created := time.Date(2024, 9, 2, 8, 30, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, &domain.Assessment{Name: "Midterm", Folder: "a", Rubric: "R1", CreatedAt: created}))
	require.NoError(t, repo.Append(ctx, &domain.Assessment{Name: "Midterm", Folder: "b", Rubric: "R1", CreatedAt: created}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Folder)
	assert.Equal(t, "b", list[1].Folder)
	assert.True(t, created.Equal(list[0].CreatedAt))
}

func TestRubricRepo_PutGetList(t *testing.T) {
	repo := NewRubricRepository(openTestDB(t))
	ctx := context.Background()

	_, err := repo.Get(ctx, "R1")
	assert.ErrorIs(t, err, domain.ErrRubricNotFound)

	r1 := &domain.Rubric{Name: "R1", Criteria: []domain.Criterion{{Title: "Clarity", Range: domain.Range{Min: 0, Max: 10}}}}
	r2 := &domain.Rubric{Name: "R2", Criteria: []domain.Criterion{{Title: "Voice", Range: domain.Range{Min: 1, Max: 5}}}}
	require.NoError(t, repo.Put(ctx, r1))
	require.NoError(t, repo.Put(ctx, r2))
	require.NoError(t, repo.Put(ctx, &domain.Rubric{Name: "R1", Criteria: []domain.Criterion{
		{Title: "Clarity", Range: domain.Range{Min: 0, Max: 20}},
	}}))

	got, err := repo.Get(ctx, "R1")
	require.NoError(t, err)
	assert.Equal(t, domain.Range{Min: 0, Max: 20}, got.Criteria[0].Range)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "R1", all[0].Name)
	assert.Equal(t, "R2", all[1].Name)
}

func TestGradeRepo_LastWriterWins(t *testing.T) {
	repo := NewGradeRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "A", &domain.GradeRecord{EssayFile: "e1", Grades: map[string]int{"Clarity": 3}, GradedAt: time.Now()}))
	require.NoError(t, repo.Put(ctx, "A", &domain.GradeRecord{EssayFile: "e1", Grades: map[string]int{"Clarity": 8}, Comments: "redo", GradedAt: time.Now()}))

	got, err := repo.Get(ctx, "A", "e1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Clarity": 8}, got.Grades)
	assert.Equal(t, "redo", got.Comments)

	_, err = repo.Get(ctx, "A", "e2")
	assert.ErrorIs(t, err, domain.ErrGradeNotFound)
}

func TestGradeRepo_ListKeys(t *testing.T) {
	repo := NewGradeRepository(openTestDB(t))
	ctx := context.Background()

	for _, k := range []string{"b.txt", "a.txt"} {
		require.NoError(t, repo.Put(ctx, "A", &domain.GradeRecord{EssayFile: k, Grades: map[string]int{}}))
	}
	require.NoError(t, repo.Put(ctx, "B", &domain.GradeRecord{EssayFile: "c.txt", Grades: map[string]int{}}))

	keys, err := repo.ListKeys(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, keys)

	keys, err = repo.ListKeys(ctx, "none")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRepos_Contract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storetest.Repos {
		db := openTestDB(t)
		return storetest.Repos{
			Assessments: NewAssessmentRepository(db),
			Rubrics:     NewRubricRepository(db),
			Grades:      NewGradeRepository(db),
		}
	})
}

func TestRepos_CorruptTimestamps(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO assessments (name, folder, rubric, description, created_at) VALUES ('Midterm', 'a', 'R1', '', 'yesterday')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO grades (assessment, essay_file, grades, comments, graded_at) VALUES ('Midterm', 'e1.txt', '{}', '', 'not-a-time')`)
	require.NoError(t, err)

	_, err = NewAssessmentRepository(db).List(ctx)
	assert.ErrorContains(t, err, "created_at")

	_, err = NewGradeRepository(db).Get(ctx, "Midterm", "e1.txt")
	assert.ErrorContains(t, err, "graded_at")
}
