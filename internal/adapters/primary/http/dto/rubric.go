package dto

import (
	"essay-grader-service/internal/core/domain"
)

type CriterionDTO struct {
	Title       string       `json:"title" binding:"required"`
	Range       domain.Range `json:"range"`
	Description string       `json:"description,omitempty"`
}

// PutRubricRequest is the body of PUT /rubrics/:name. The name comes from the path.
type PutRubricRequest struct {
	Criteria []CriterionDTO `json:"criteria" binding:"required,min=1,dive"`
}

func (r PutRubricRequest) ToDomain(name string) *domain.Rubric {
	criteria := make([]domain.Criterion, 0, len(r.Criteria))
	for _, c := range r.Criteria {
		criteria = append(criteria, domain.Criterion{Title: c.Title, Range: c.Range, Description: c.Description})
	}
	return &domain.Rubric{Name: name, Criteria: criteria}
}

type RubricResponse struct {
	Name     string         `json:"name"`
	Criteria []CriterionDTO `json:"criteria"`
}

type ListRubricsResponse struct {
	Items []RubricResponse `json:"items"`
	Total int              `json:"total"`
}

func ToRubricResponse(r *domain.Rubric) RubricResponse {
	criteria := make([]CriterionDTO, 0, len(r.Criteria))
	for _, c := range r.Criteria {
		criteria = append(criteria, CriterionDTO{Title: c.Title, Range: c.Range, Description: c.Description})
	}
	return RubricResponse{Name: r.Name, Criteria: criteria}
}
