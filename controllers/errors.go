package controllers

import (
	"errors"
	"net/http"

	"sudharnayak-be/repositories"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError applies the uniform repository-error to HTTP-status mapping:
// validation 400, not found 404, everything else 500 with the error message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
