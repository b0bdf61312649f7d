package scoring

import (
	"encoding/json"
	"math"
	"sort"

	"essay-grader-service/internal/core/domain"
)

// The assistant rates every criterion on this inclusive scale.
const (
	RawScoreMin = 1
	RawScoreMax = 5
)

// Expand maps a raw score linearly from [1, 5] onto rng and rounds half up,
// so 1 lands on rng.Min and 5 on rng.Max.
func Expand(score float64, rng domain.Range) int {
	span := float64(rng.Max - rng.Min)
	v := (score-RawScoreMin)/(RawScoreMax-RawScoreMin)*span + float64(rng.Min)
	return int(math.Floor(v + 0.5))
}

// MatchScores pairs every rubric criterion with a score from the assistant's
// reply and expands it. The result is all-or-nothing: the first criterion that
// cannot be matched or validated fails the whole call.
//
// A key equal to the title wins outright. Otherwise keys are compared after
// NormalizeKey; a single hit is used and several hits are an
// *AmbiguousCriterionError.
func MatchScores(rubric *domain.Rubric, scores map[string]any) (*domain.GradeResult, error) {
	res := &domain.GradeResult{
		Raw:      make(map[string]float64, len(rubric.Criteria)),
		Expanded: make(map[string]int, len(rubric.Criteria)),
	}

	for _, c := range rubric.Criteria {
		key, err := matchKey(c.Title, scores)
		if err != nil {
			return nil, err
		}

		score, ok := toScore(scores[key])
		if !ok {
			return nil, &domain.InvalidScoreError{Title: c.Title, Score: scores[key]}
		}

		res.Raw[c.Title] = score
		res.Expanded[c.Title] = Expand(score, c.Range)
	}
	return res, nil
}

func matchKey(title string, scores map[string]any) (string, error) {
	if _, ok := scores[title]; ok {
		return title, nil
	}

	want := NormalizeKey(title)
	if want == "" {
		return "", &domain.UnmatchedCriterionError{Title: title}
	}

	var hits []string
	for k := range scores {
		if NormalizeKey(k) == want {
			hits = append(hits, k)
		}
	}
	switch len(hits) {
	case 0:
		return "", &domain.UnmatchedCriterionError{Title: title}
	case 1:
		return hits[0], nil
	default:
		sort.Strings(hits)
		return "", &domain.AmbiguousCriterionError{Title: title, Keys: hits}
	}
}

// toScore accepts finite JSON numbers only; strings, booleans and nulls are
// rejected even when they look numeric. The value must also lie on the 1-5
// scale the prompt asks for, which keeps every expanded grade inside its
// criterion's [min, max].
func toScore(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case int:
		f = float64(n)
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f < RawScoreMin || f > RawScoreMax {
		return 0, false
	}
	return f, true
}
