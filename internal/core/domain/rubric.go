package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Range is an inclusive integer score range persisted as [min, max].
type Range struct {
	Min int
	Max int
}

func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{r.Min, r.Max})
}

func (r *Range) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("range must be [min, max]: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("range must have exactly two bounds, got %d", len(pair))
	}
	r.Min, r.Max = pair[0], pair[1]
	return nil
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Criterion is one gradable dimension. Title doubles as the scoring key;
// Description is optional guidance shown to the grader.
type Criterion struct {
	Title       string `json:"title"`
	Range       Range  `json:"range"`
	Description string `json:"description,omitempty"`
}

type Rubric struct {
	Name     string      `json:"name"`
	Criteria []Criterion `json:"criteria"`
}

// Validate enforces the rubric invariants: a name, at least one criterion,
// unique non-empty titles and min < max on every range.
func (r *Rubric) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidRubricName
	}
	if len(r.Criteria) == 0 {
		return ErrEmptyCriteria
	}
	seen := make(map[string]struct{}, len(r.Criteria))
	for _, c := range r.Criteria {
		if strings.TrimSpace(c.Title) == "" {
			return ErrInvalidCriterionTitle
		}
		if _, dup := seen[c.Title]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateCriterion, c.Title)
		}
		seen[c.Title] = struct{}{}
		if c.Range.Min >= c.Range.Max {
			return fmt.Errorf("%w: %q has [%d, %d]", ErrInvalidRange, c.Title, c.Range.Min, c.Range.Max)
		}
	}
	return nil
}

// Criterion looks up a criterion by its exact title.
func (r *Rubric) Criterion(title string) (Criterion, bool) {
	for _, c := range r.Criteria {
		if c.Title == title {
			return c, true
		}
	}
	return Criterion{}, false
}
