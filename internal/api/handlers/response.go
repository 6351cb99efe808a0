package handlers

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform success response shape
type Envelope struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorEnvelope is the uniform error response shape
type ErrorEnvelope struct {
	Status  bool     `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func respondSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{Status: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string, errs []string) {
	c.JSON(status, ErrorEnvelope{Status: false, Message: message, Errors: errs})
}

// handleError converts a service-level failure into the HTTP taxonomy:
// 404 for missing entities, 401 for authentication or role failures, 422
// with the full violation list for validation errors, and an opaque 500 for
// anything else. Server errors are logged with the operation name and cause
// before the generic message goes out; internal details never reach the
// client.
func handleError(c *gin.Context, op string, err error) {
	var validationErrs *apperrors.ValidationErrors
	switch {
	case apperrors.IsNotFound(err):
		respondError(c, http.StatusNotFound, err.Error(), nil)
	case apperrors.IsAuthentication(err), apperrors.IsAuthorization(err):
		respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
	case errors.As(err, &validationErrs):
		respondError(c, http.StatusUnprocessableEntity, "Validation error", validationErrs.Errors)
	case apperrors.IsAlreadyExists(err):
		respondError(c, http.StatusUnprocessableEntity, "Validation error", []string{err.Error()})
	default:
		logger.WithOperation(op).WithError(err).Error("internal server error")
		respondError(c, http.StatusInternalServerError, "there is something wrong in server", nil)
	}
}

// pagination extracts page/page_size query parameters with sane bounds
func pagination(c *gin.Context, defaultPageSize int) (page, pageSize int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = defaultPageSize
	}
	return page, pageSize
}
