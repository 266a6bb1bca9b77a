package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"roulette-backend/internal/middleware"
	"roulette-backend/internal/services"
)

const (
	CodeValidation          = "validation_error"
	CodeNotFound            = "not_found"
	CodeInsufficientBalance = "insufficient_balance"
	CodeInternal            = "internal_error"
)

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error": message,
		"code":  code,
	})
}

// respondError maps service errors onto status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidBet):
		writeError(c, http.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, services.ErrInsufficientBalance):
		writeError(c, http.StatusBadRequest, CodeInsufficientBalance, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		writeError(c, http.StatusNotFound, CodeNotFound, "User not found")
	default:
		log.WithFields(log.Fields{
			"request_id": middleware.RequestIDFrom(c),
			"path":       c.FullPath(),
		}).WithError(err).Error("Unhandled error")
		writeError(c, http.StatusInternalServerError, CodeInternal, "Internal error")
	}
}
