// Package storetest holds the behaviour every record store driver must share.
// Driver packages call Run from their own tests.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essay-grader-service/internal/core/domain"
	ports "essay-grader-service/internal/core/ports/output"
)

// Repos is one driver's set of repositories over an empty store.
type Repos struct {
	Assessments ports.AssessmentRepository
	Rubrics     ports.RubricRepository
	Grades      ports.GradeRepository
}

// Run exercises open's repositories. open must return repositories backed by
// a fresh, empty store on every call.
func Run(t *testing.T, open func(t *testing.T) Repos) {
	tests := []struct {
		name string
		fn   func(t *testing.T, r Repos)
	}{
		{"assessments append in order and keep duplicates", assessmentsAppend},
		{"rubric get missing is not found", rubricNotFound},
		{"rubric put overwrites and keeps descriptions", rubricPutOverwrites},
		{"grade get missing is not found", gradeNotFound},
		{"grade last writer wins", gradeLastWriterWins},
		{"grade concurrent writers leave one record", gradeConcurrentWriters},
		{"grade keys are sorted and scoped", gradeKeysScoped},
		{"grade assessment names may contain separators", gradeAssessmentSeparators},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, open(t))
		})
	}
}

// Timestamps are whole seconds so every driver stores them exactly.
var when = time.Date(2024, 9, 2, 8, 30, 0, 0, time.UTC)

func assessmentsAppend(t *testing.T, r Repos) {
	ctx := context.Background()

	list, err := r.Assessments.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, r.Assessments.Append(ctx, &domain.Assessment{Name: "Midterm", Folder: "a", Rubric: "R1", CreatedAt: when}))
	require.NoError(t, r.Assessments.Append(ctx, &domain.Assessment{Name: "Midterm", Folder: "b", Rubric: "R1", Description: "retake", CreatedAt: when}))

	list, err = r.Assessments.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Folder)
	assert.Equal(t, "b", list[1].Folder)
	assert.Equal(t, "retake", list[1].Description)
	assert.True(t, when.Equal(list[0].CreatedAt))
}

func rubricNotFound(t *testing.T, r Repos) {
	_, err := r.Rubrics.Get(context.Background(), "R1")
	assert.ErrorIs(t, err, domain.ErrRubricNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func rubricPutOverwrites(t *testing.T, r Repos) {
	ctx := context.Background()

	require.NoError(t, r.Rubrics.Put(ctx, &domain.Rubric{Name: "R1", Criteria: []domain.Criterion{
		{Title: "Clarity", Range: domain.Range{Min: 0, Max: 10}},
	}}))
	require.NoError(t, r.Rubrics.Put(ctx, &domain.Rubric{Name: "R2", Criteria: []domain.Criterion{
		{Title: "Voice", Range: domain.Range{Min: 1, Max: 5}},
	}}))
	require.NoError(t, r.Rubrics.Put(ctx, &domain.Rubric{Name: "R1", Criteria: []domain.Criterion{
		{Title: "Clarity", Range: domain.Range{Min: 0, Max: 20}, Description: "Ideas are easy to follow."},
		{Title: "Organization", Range: domain.Range{Min: 1, Max: 4}},
	}}))

	got, err := r.Rubrics.Get(ctx, "R1")
	require.NoError(t, err)
	require.Len(t, got.Criteria, 2)
	assert.Equal(t, domain.Range{Min: 0, Max: 20}, got.Criteria[0].Range)
	assert.Equal(t, "Ideas are easy to follow.", got.Criteria[0].Description)
	assert.Equal(t, "Organization", got.Criteria[1].Title)

	all, err := r.Rubrics.List(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(all))
	for _, rb := range all {
		names = append(names, rb.Name)
	}
	assert.ElementsMatch(t, []string{"R1", "R2"}, names)
}

func gradeNotFound(t *testing.T, r Repos) {
	ctx := context.Background()

	_, err := r.Grades.Get(ctx, "Midterm", "e1.txt")
	assert.ErrorIs(t, err, domain.ErrGradeNotFound)

	require.NoError(t, r.Grades.Put(ctx, "Midterm", &domain.GradeRecord{EssayFile: "e1.txt", Grades: map[string]int{"Clarity": 3}, GradedAt: when}))
	_, err = r.Grades.Get(ctx, "Final", "e1.txt")
	assert.ErrorIs(t, err, domain.ErrGradeNotFound)
}

func gradeLastWriterWins(t *testing.T, r Repos) {
	ctx := context.Background()

	require.NoError(t, r.Grades.Put(ctx, "Midterm", &domain.GradeRecord{
		EssayFile: "e1.txt", Grades: map[string]int{"Clarity": 3}, Comments: "first", GradedAt: when,
	}))
	require.NoError(t, r.Grades.Put(ctx, "Midterm", &domain.GradeRecord{
		EssayFile: "e1.txt", Grades: map[string]int{"Clarity": 8}, GradedAt: when.Add(time.Hour),
	}))

	got, err := r.Grades.Get(ctx, "Midterm", "e1.txt")
	require.NoError(t, err)
	assert.Equal(t, "e1.txt", got.EssayFile)
	assert.Equal(t, map[string]int{"Clarity": 8}, got.Grades)
	assert.Empty(t, got.Comments)
	assert.True(t, when.Add(time.Hour).Equal(got.GradedAt))
}

func gradeConcurrentWriters(t *testing.T, r Repos) {
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, r.Grades.Put(ctx, "Midterm", &domain.GradeRecord{
				EssayFile: "e1.txt", Grades: map[string]int{"Clarity": i}, GradedAt: when,
			}))
		}(i)
	}
	wg.Wait()

	got, err := r.Grades.Get(ctx, "Midterm", "e1.txt")
	require.NoError(t, err)
	assert.Contains(t, got.Grades, "Clarity")
	assert.GreaterOrEqual(t, got.Grades["Clarity"], 0)
	assert.Less(t, got.Grades["Clarity"], 10)

	keys, err := r.Grades.ListKeys(ctx, "Midterm")
	require.NoError(t, err)
	assert.Equal(t, []string{"e1.txt"}, keys)
}

func gradeKeysScoped(t *testing.T, r Repos) {
	ctx := context.Background()

	keys, err := r.Grades.ListKeys(ctx, "Midterm")
	require.NoError(t, err)
	assert.Empty(t, keys)

	for _, k := range []string{"b.txt", "a.txt", "c.txt"} {
		require.NoError(t, r.Grades.Put(ctx, "Midterm", &domain.GradeRecord{EssayFile: k, Grades: map[string]int{}, GradedAt: when}))
	}
	require.NoError(t, r.Grades.Put(ctx, "Final", &domain.GradeRecord{EssayFile: "z.txt", Grades: map[string]int{}, GradedAt: when}))

	keys, err = r.Grades.ListKeys(ctx, "Midterm")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, keys)
}

func gradeAssessmentSeparators(t *testing.T, r Repos) {
	ctx := context.Background()

	for i, name := range []string{"Unit 3/Quiz", "Unit 3", ".."} {
		g := &domain.GradeRecord{EssayFile: "e1.txt", Grades: map[string]int{"Clarity": i}, GradedAt: when}
		require.NoError(t, r.Grades.Put(ctx, name, g), name)
	}
	for i, name := range []string{"Unit 3/Quiz", "Unit 3", ".."} {
		got, err := r.Grades.Get(ctx, name, "e1.txt")
		require.NoError(t, err, name)
		assert.Equal(t, i, got.Grades["Clarity"], fmt.Sprintf("assessment %q", name))

		keys, err := r.Grades.ListKeys(ctx, name)
		require.NoError(t, err, name)
		assert.Equal(t, []string{"e1.txt"}, keys, name)
	}
}
