package handlers

import (
	"errors"
	"io"
	"net/http"

	"essay-grader-service/internal/adapters/primary/http/dto"
	"essay-grader-service/internal/core/domain"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ListGrades(c *gin.Context) {
	name := c.Param("name")
	keys, err := h.gradeSvc.ListKeys(c.Request.Context(), name)
	if err != nil {
		log.WithError(err).WithField("assessment", name).Error("list grades failed")
		mapDomainError(c, err)
		return
	}
	if keys == nil {
		keys = []string{}
	}
	c.JSON(http.StatusOK, dto.ListGradeKeysResponse{Assessment: name, EssayFiles: keys})
}

func (h *Handler) GetGrade(c *gin.Context) {
	name := c.Param("name")
	g, err := h.gradeSvc.Get(c.Request.Context(), name, c.Param("file"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToGradeResponse(name, g))
}

func (h *Handler) SubmitGrade(c *gin.Context) {
	var req dto.SubmitGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := c.Param("name")
	g, err := h.gradeSvc.Submit(c.Request.Context(), name, &domain.GradeRecord{
		EssayFile: c.Param("file"),
		Grades:    req.Grades,
		Comments:  req.Comments,
	})
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToGradeResponse(name, g))
}

// AutoGrade scores a stored transcript with the text generator and saves the
// expanded grades. The body is optional.
func (h *Handler) AutoGrade(c *gin.Context) {
	var req dto.AutoGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := c.Param("name")
	g, result, err := h.gradeSvc.GradeEssay(c.Request.Context(), name, c.Param("file"), req.Comments)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAutoGradeResponse(name, g, result))
}
