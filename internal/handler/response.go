package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fisionote/internal/domain"
	"fisionote/internal/generator"
	"fisionote/internal/logger"
)

var nopLogger = zerolog.Nop()

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, "INVALID_REQUEST", "invalid request"
	case errors.Is(err, domain.ErrEmptyTranscript):
		return http.StatusBadRequest, "EMPTY_TRANSCRIPT", "transcript is required"
	case errors.Is(err, domain.ErrTranscriptTooLong):
		return http.StatusRequestEntityTooLarge, "TRANSCRIPT_TOO_LONG", "transcript exceeds maximum allowed length"
	case errors.Is(err, domain.ErrInvalidSpecialty):
		return http.StatusBadRequest, "INVALID_SPECIALTY", "invalid specialty; allowed: general, musculoskeletal, neurological, respiratory, sports, geriatric"
	case errors.Is(err, domain.ErrGeneratorNotConfigured):
		return http.StatusServiceUnavailable, "GENERATOR_NOT_CONFIGURED", "note generation is not configured"
	case errors.Is(err, domain.ErrGeneratorRateLimit):
		return http.StatusTooManyRequests, "GENERATOR_RATE_LIMITED", "note generation is rate limited; retry later"
	case errors.Is(err, domain.ErrGeneratorFailed):
		return http.StatusBadGateway, "GENERATOR_FAILED", "note generation failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)

	var rlErr *generator.RateLimitError
	if errors.As(err, &rlErr) {
		c.Header("Retry-After", strconv.Itoa(int(rlErr.RetryAfter.Seconds())))
	}

	if status >= 500 {
		log := logger.FromContext(c.Request.Context(), nopLogger)
		log.Error().Err(err).Str("code", code).Msg("request failed")
	}
	RespondError(c, status, code, msg)
}
