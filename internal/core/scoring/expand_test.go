package scoring

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essay-grader-service/internal/core/domain"
)

func clarityRubric() *domain.Rubric {
	return &domain.Rubric{
		Name:     "R1",
		Criteria: []domain.Criterion{{Title: "Clarity", Range: domain.Range{Min: 0, Max: 10}}},
	}
}

func TestExpand_Boundaries(t *testing.T) {
	ranges := []domain.Range{{Min: 0, Max: 10}, {Min: 1, Max: 5}, {Min: -3, Max: 7}, {Min: 0, Max: 1}, {Min: 50, Max: 100}}
	for _, rng := range ranges {
		assert.Equal(t, rng.Min, Expand(1, rng), "range %v", rng)
		assert.Equal(t, rng.Max, Expand(5, rng), "range %v", rng)
	}
}

func TestExpand_RoundsHalfUp(t *testing.T) {
	rng := domain.Range{Min: 0, Max: 10}
	assert.Equal(t, 5, Expand(3, rng))
	assert.Equal(t, 3, Expand(2, rng)) // 2.5
	assert.Equal(t, 8, Expand(4, rng)) // 7.5

	// -2.5 rounds toward +inf
	assert.Equal(t, -2, Expand(3, domain.Range{Min: -5, Max: 0}))
	assert.Equal(t, -3, Expand(2, domain.Range{Min: -4, Max: 0}))
}

func TestExpand_Monotonic(t *testing.T) {
	ranges := []domain.Range{{Min: 0, Max: 10}, {Min: 0, Max: 3}, {Min: -5, Max: 5}, {Min: 10, Max: 11}}
	for _, rng := range ranges {
		prev := math.MinInt
		for s := 1.0; s <= 5.0; s += 0.125 {
			got := Expand(s, rng)
			assert.GreaterOrEqual(t, got, prev, "range %v score %v", rng, s)
			assert.GreaterOrEqual(t, got, rng.Min)
			assert.LessOrEqual(t, got, rng.Max)
			prev = got
		}
	}
}

func TestMatchScores_EndToEnd(t *testing.T) {
	scores, err := ExtractJSON(`{"Clarity": 3}`)
	require.NoError(t, err)

	res, err := MatchScores(clarityRubric(), scores)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Clarity": 5}, res.Expanded)
	assert.Equal(t, map[string]float64{"Clarity": 3}, res.Raw)
}

func TestMatchScores_NormalizedKeys(t *testing.T) {
	rubric := &domain.Rubric{Name: "R", Criteria: []domain.Criterion{
		{Title: "Use of Evidence", Range: domain.Range{Min: 0, Max: 20}},
		{Title: "Grammar", Range: domain.Range{Min: 1, Max: 4}},
	}}
	scores := map[string]any{
		"use-of-evidence": json.Number("5"),
		"GRAMMAR":         json.Number("1"),
	}

	res, err := MatchScores(rubric, scores)
	require.NoError(t, err)
	assert.Equal(t, 20, res.Expanded["Use of Evidence"])
	assert.Equal(t, 1, res.Expanded["Grammar"])
}

func TestMatchScores_Unmatched(t *testing.T) {
	rubric := &domain.Rubric{Name: "R", Criteria: []domain.Criterion{
		{Title: "Clarity", Range: domain.Range{Min: 0, Max: 10}},
		{Title: "Organization", Range: domain.Range{Min: 0, Max: 10}},
	}}

	res, err := MatchScores(rubric, map[string]any{"Clarity": json.Number("4")})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrUnmatchedCriterion)

	var uErr *domain.UnmatchedCriterionError
	require.True(t, errors.As(err, &uErr))
	assert.Equal(t, "Organization", uErr.Title)
}

func TestMatchScores_NumericPrefixNotStripped(t *testing.T) {
	_, err := MatchScores(clarityRubric(), map[string]any{"1. Clarity": json.Number("4")})
	assert.ErrorIs(t, err, domain.ErrUnmatchedCriterion)
}

func TestMatchScores_ExactBeatsNormalized(t *testing.T) {
	scores := map[string]any{"Clarity": json.Number("2"), "clarity": json.Number("5")}
	res, err := MatchScores(clarityRubric(), scores)
	require.NoError(t, err)
	assert.Equal(t, float64(2), res.Raw["Clarity"])
}

func TestMatchScores_Ambiguous(t *testing.T) {
	scores := map[string]any{"CLARITY": json.Number("2"), "clarity!": json.Number("5")}
	_, err := MatchScores(clarityRubric(), scores)
	assert.ErrorIs(t, err, domain.ErrAmbiguousCriterion)

	var aErr *domain.AmbiguousCriterionError
	require.True(t, errors.As(err, &aErr))
	assert.Equal(t, []string{"CLARITY", "clarity!"}, aErr.Keys)
}

func TestMatchScores_InvalidScores(t *testing.T) {
	bad := []any{"four", nil, true, json.Number("0"), json.Number("6"), json.Number("1e400"), map[string]any{}}
	for _, v := range bad {
		_, err := MatchScores(clarityRubric(), map[string]any{"Clarity": v})
		assert.ErrorIs(t, err, domain.ErrInvalidScore, "value %v", v)
	}
}

func TestMatchScores_NumericStringRejected(t *testing.T) {
	for _, v := range []any{"5", " 5 ", "3.0"} {
		res, err := MatchScores(clarityRubric(), map[string]any{"Clarity": v})
		assert.Nil(t, res)
		assert.ErrorIs(t, err, domain.ErrInvalidScore)

		var scoreErr *domain.InvalidScoreError
		require.ErrorAs(t, err, &scoreErr)
		assert.Equal(t, v, scoreErr.Score)
	}
}

func TestBuildGradingPrompt(t *testing.T) {
	rubric := &domain.Rubric{Name: "R", Criteria: []domain.Criterion{
		{Title: "Clarity", Range: domain.Range{Min: 0, Max: 10}},
		{Title: "Voice", Range: domain.Range{Min: 0, Max: 10}},
	}}

	prompt, err := BuildGradingPrompt("My summer.", rubric)
	require.NoError(t, err)
	assert.Contains(t, prompt, "1. Clarity\n2. Voice\n")
	assert.Contains(t, prompt, `{"Clarity": 3, "Voice": 3}`)
	assert.Contains(t, prompt, "My summer.")
}

func TestBuildGradingPrompt_Descriptions(t *testing.T) {
	rubric := &domain.Rubric{Name: "R", Criteria: []domain.Criterion{
		{Title: "Clarity", Description: "Ideas are easy to follow.", Range: domain.Range{Min: 0, Max: 10}},
		{Title: "Voice", Range: domain.Range{Min: 0, Max: 10}},
	}}

	prompt, err := BuildGradingPrompt("My summer.", rubric)
	require.NoError(t, err)
	assert.Contains(t, prompt, "1. Clarity\n   Ideas are easy to follow.\n2. Voice\n")
}
