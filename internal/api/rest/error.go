package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clearlane/ownership-oracle/internal/domain"
	"github.com/clearlane/ownership-oracle/internal/logger"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	errCodeBadRequest       ErrorCode = "bad_request"
	errCodeNotFound         ErrorCode = "not_found"
	errCodeValidationFailed ErrorCode = "validation_failed"
	errCodeNoValidClaim     ErrorCode = "no_valid_claim"
	errCodeUnresolved       ErrorCode = "unresolved"

	// Server errors (5xx)
	errCodeInternalError ErrorCode = "internal_error"
	errCodeUpstreamError ErrorCode = "upstream_error"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail contains error information
type errorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...string) {
	response := errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	}

	if len(details) > 0 {
		response.Error.Details = details[0]
	}

	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, errCodeBadRequest, message, details...)
}

// respondValidationError sends a 400 Bad Request with validation error
func respondValidationError(c *gin.Context, details string) {
	respondWithError(c, http.StatusBadRequest, errCodeValidationFailed, "Validation failed", details)
}

// respondDomainError maps a domain error onto the appropriate HTTP status.
// Unclassified errors are logged and surface as 500s without detail.
func respondDomainError(c *gin.Context, err error) {
	switch domain.KindOf(err) {
	case domain.KindInvalidArgument:
		respondWithError(c, http.StatusBadRequest, errCodeBadRequest, err.Error())
	case domain.KindNotFound:
		respondWithError(c, http.StatusNotFound, errCodeNotFound, err.Error())
	case domain.KindNoValidClaim:
		respondWithError(c, http.StatusUnprocessableEntity, errCodeNoValidClaim, err.Error())
	case domain.KindUnresolved:
		respondWithError(c, http.StatusConflict, errCodeUnresolved, err.Error())
	case domain.KindUpstreamFailure:
		logger.Error(err, zap.String("path", c.Request.URL.Path))
		respondWithError(c, http.StatusBadGateway, errCodeUpstreamError, "Upstream dependency failed")
	default:
		logger.Error(err, zap.String("path", c.Request.URL.Path))
		respondWithError(c, http.StatusInternalServerError, errCodeInternalError, "Internal server error")
	}
}
