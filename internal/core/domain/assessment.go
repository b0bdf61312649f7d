package domain

import (
	"strings"
	"time"
)

// Assessment binds a rubric to a folder of essay artifacts. Records are
// appended once and never updated; names are not unique.
type Assessment struct {
	Name        string    `json:"name"`
	Folder      string    `json:"folder"`
	Rubric      string    `json:"rubric"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewAssessment creates an Assessment with validation
func NewAssessment(name, folder, rubric, description string) (*Assessment, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidAssessmentName
	}
	if strings.TrimSpace(folder) == "" {
		return nil, ErrInvalidFolder
	}
	if err := ValidatePathName(folder); err != nil {
		return nil, err
	}
	if strings.TrimSpace(rubric) == "" {
		return nil, ErrInvalidRubricName
	}
	return &Assessment{
		Name:        name,
		Folder:      folder,
		Rubric:      rubric,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
