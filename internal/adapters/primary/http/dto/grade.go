package dto

import (
	"time"

	"essay-grader-service/internal/core/domain"
)

type AutoGradeRequest struct {
	Comments string `json:"comments"`
}

type SubmitGradeRequest struct {
	Grades   map[string]int `json:"grades" binding:"required"`
	Comments string         `json:"comments"`
}

type GradeResponse struct {
	Assessment string         `json:"assessment"`
	EssayFile  string         `json:"essayFile"`
	Grades     map[string]int `json:"grades"`
	Comments   string         `json:"comments,omitempty"`
	GradedAt   string         `json:"gradedAt"`
}

// AutoGradeResponse adds the assistant's native 1-5 scores to the stored record.
type AutoGradeResponse struct {
	GradeResponse
	RawScores map[string]float64 `json:"rawScores"`
}

type ListGradeKeysResponse struct {
	Assessment string   `json:"assessment"`
	EssayFiles []string `json:"essayFiles"`
}

func ToGradeResponse(assessment string, g *domain.GradeRecord) GradeResponse {
	return GradeResponse{
		Assessment: assessment,
		EssayFile:  g.EssayFile,
		Grades:     g.Grades,
		Comments:   g.Comments,
		GradedAt:   g.GradedAt.Format(time.RFC3339),
	}
}

func ToAutoGradeResponse(assessment string, g *domain.GradeRecord, r *domain.GradeResult) AutoGradeResponse {
	return AutoGradeResponse{
		GradeResponse: ToGradeResponse(assessment, g),
		RawScores:     r.Raw,
	}
}
