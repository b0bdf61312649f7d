package handlers

import (
	"net/http"

	"essay-grader-service/internal/adapters/primary/http/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ListRubrics(c *gin.Context) {
	rubrics, err := h.rubricSvc.List(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("list rubrics failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.RubricResponse, 0, len(rubrics))
	for _, r := range rubrics {
		items = append(items, dto.ToRubricResponse(r))
	}
	c.JSON(http.StatusOK, dto.ListRubricsResponse{Items: items, Total: len(items)})
}

func (h *Handler) GetRubric(c *gin.Context) {
	rubric, err := h.rubricSvc.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRubricResponse(rubric))
}

func (h *Handler) PutRubric(c *gin.Context) {
	var req dto.PutRubricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rubric, err := h.rubricSvc.Put(c.Request.Context(), req.ToDomain(c.Param("name")))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRubricResponse(rubric))
}
