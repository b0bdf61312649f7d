package domain

import (
	"fmt"
	"time"
)

// GradeRecord is the scoring outcome for one essay under one assessment,
// keyed by (assessment name, essay file). A later write replaces it.
type GradeRecord struct {
	EssayFile string         `json:"essayFile"`
	Grades    map[string]int `json:"grades"`
	Comments  string         `json:"comments,omitempty"`
	GradedAt  time.Time      `json:"gradedAt"`
}

// GradeKey addresses a GradeRecord.
type GradeKey struct {
	Assessment string `json:"assessment"`
	EssayFile  string `json:"essayFile"`
}

// ValidateAgainst checks that grades cover exactly the rubric's criteria and
// that every value lies in its criterion's range.
func (g *GradeRecord) ValidateAgainst(r *Rubric) error {
	if g.EssayFile == "" {
		return ErrInvalidEssayFile
	}
	for title := range g.Grades {
		if _, ok := r.Criterion(title); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCriterion, title)
		}
	}
	for _, c := range r.Criteria {
		v, ok := g.Grades[c.Title]
		if !ok {
			return fmt.Errorf("%w: %q", ErrMissingGrade, c.Title)
		}
		if !c.Range.Contains(v) {
			return fmt.Errorf("%w: %q=%d not in [%d, %d]", ErrGradeOutOfRange, c.Title, v, c.Range.Min, c.Range.Max)
		}
	}
	return nil
}

// GradeResult is what automatic grading produces: the assistant's scores on its
// native 1-5 scale and the same scores rescaled into each criterion's range.
type GradeResult struct {
	Raw      map[string]float64 `json:"rawScores"`
	Expanded map[string]int     `json:"expanded"`
}
