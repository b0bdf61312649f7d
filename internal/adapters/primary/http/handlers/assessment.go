package handlers

import (
	"net/http"

	"essay-grader-service/internal/adapters/primary/http/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ListAssessments(c *gin.Context) {
	assessments, err := h.assessmentSvc.List(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("list assessments failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.AssessmentResponse, 0, len(assessments))
	for _, a := range assessments {
		items = append(items, dto.ToAssessmentResponse(a))
	}
	c.JSON(http.StatusOK, dto.ListAssessmentsResponse{Items: items, Total: len(items)})
}

func (h *Handler) GetAssessment(c *gin.Context) {
	a, err := h.assessmentSvc.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAssessmentResponse(a))
}

func (h *Handler) CreateAssessment(c *gin.Context) {
	var req dto.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.assessmentSvc.Create(c.Request.Context(), req.Name, req.Folder, req.Rubric, req.Description)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAssessmentResponse(a))
}
