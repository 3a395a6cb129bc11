package handlers

import (
	"errors"
	"net/http"

	"backoffice/internal/domain"
	"backoffice/internal/http/middleware"
	"backoffice/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// FieldError is one entry of the details of a validation_error response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), validationDetails(err))
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsInternal(err):
		logError(c, err)
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error(), nil)
	default:
		logError(c, err)
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}

func validationDetails(err error) []FieldError {
	var many domain.ValidationErrors
	if errors.As(err, &many) {
		out := make([]FieldError, 0, len(many))
		for _, ve := range many {
			out = append(out, FieldError{Field: ve.Field, Message: ve.Msg})
		}
		return out
	}
	var one domain.ValidationError
	if errors.As(err, &one) && one.Field != "" {
		return []FieldError{{Field: one.Field, Message: one.Msg}}
	}
	return nil
}

func logError(c *gin.Context, err error) {
	_ = c.Error(err)
	utils.Logger().Error("request failed",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
}
