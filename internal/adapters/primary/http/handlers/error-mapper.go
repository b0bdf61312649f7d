package handlers

import (
	"errors"
	"net/http"

	"essay-grader-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	// Listing failures carry filesystem paths; keep them out of responses.
	case errors.Is(err, domain.ErrArtifactLookup):
		c.JSON(http.StatusInternalServerError, gin.H{"error": domain.ErrArtifactLookup.Error()})

	// Not found errors
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Unusable assistant replies
	case errors.Is(err, domain.ErrNoJSONFound),
		errors.Is(err, domain.ErrMalformedJSON),
		errors.Is(err, domain.ErrUnmatchedCriterion),
		errors.Is(err, domain.ErrAmbiguousCriterion),
		errors.Is(err, domain.ErrInvalidScore):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

	// Collaborator errors
	case errors.Is(err, domain.ErrCollaborator):
		c.JSON(http.StatusBadGateway, gin.H{"error": domain.ErrCollaborator.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
