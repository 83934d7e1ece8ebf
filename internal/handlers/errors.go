package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-board/internal/apiclient"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/services"
)

var badRequestErrors = []error{
	services.ErrInvalidStatus,
	services.ErrNotImage,
	services.ErrEmptyPortfolio,
	services.ErrEmptyJobDescription,
	services.ErrNoApplication,
	models.ErrUnknownField,
	models.ErrIndexOutOfRange,
	models.ErrInvalidValue,
	services.ErrNoEmail,
	services.ErrBatchSize,
	services.ErrEmailQuery,
}

// statusFor maps service and upstream errors onto the response code.
// Upstream 4xx answers pass through; anything else upstream is a 502.
func statusFor(err error) int {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	if errors.Is(err, services.ErrNoResume) {
		return http.StatusNotFound
	}
	if code := apiclient.StatusCode(err); code >= 400 && code < 500 {
		return code
	}
	return http.StatusBadGateway
}

func respondError(c *gin.Context, msg string, err error) {
	c.JSON(statusFor(err), gin.H{"error": msg + ": " + err.Error()})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
}
