package dto

import (
	"time"

	"essay-grader-service/internal/core/domain"
)

type CreateAssessmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Folder      string `json:"folder" binding:"required"`
	Rubric      string `json:"rubric" binding:"required"`
	Description string `json:"description"`
}

type AssessmentResponse struct {
	Name        string `json:"name"`
	Folder      string `json:"folder"`
	Rubric      string `json:"rubric"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

type ListAssessmentsResponse struct {
	Items []AssessmentResponse `json:"items"`
	Total int                  `json:"total"`
}

func ToAssessmentResponse(a *domain.Assessment) AssessmentResponse {
	return AssessmentResponse{
		Name:        a.Name,
		Folder:      a.Folder,
		Rubric:      a.Rubric,
		Description: a.Description,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
}
