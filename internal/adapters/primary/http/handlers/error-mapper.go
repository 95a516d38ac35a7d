package handlers

import (
	"errors"
	"net/http"

	"news-sentiment-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrArticleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidNewsID),
		errors.Is(err, domain.ErrInvalidSentimentRange),
		errors.Is(err, domain.ErrUnsupportedExportFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Source errors surfaced by a reload
	case errors.Is(err, domain.ErrDataPathNotFound),
		errors.Is(err, domain.ErrNoDataFiles),
		errors.Is(err, domain.ErrUnsupportedFormat):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	// Service unavailable errors
	case errors.Is(err, domain.ErrDatasetNotLoaded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
