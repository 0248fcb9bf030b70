package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/applytrack/applytrack/internal/apperr"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps error kinds to status codes. Anything unexpected
// becomes a generic retryable failure; details stay server-side.
func respondError(c *gin.Context, err error) {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ve.Error(), "field": ve.Field})
		return
	}
	var nf *apperr.NotFoundError
	if errors.As(err, &nf) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	var pe *apperr.PermissionError
	if errors.As(err, &pe) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
		return
	}
	var ae *apperr.AuthError
	if errors.As(err, &ae) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed, try again"})
}
