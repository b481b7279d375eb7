package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joefazee/atlas/internal/validator"
	"github.com/joefazee/atlas/models"
)

// Response represents a standardized API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo represents error information
type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ListMeta represents list metadata
type ListMeta struct {
	Count int `json:"count"`
}

// SuccessResponse sends a successful response
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessResponseWithMeta sends a successful response with metadata
func SuccessResponseWithMeta(c *gin.Context, statusCode int, message string, data, meta interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

// ErrorResponse sends an error response
func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// BadRequestResponse is for bodies or parameters that cannot be parsed at all.
func BadRequestResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message, nil)
}

// ValidationErrorResponse sends a validation error response
func ValidationErrorResponse(c *gin.Context, details interface{}) {
	ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data", details)
}

// NotFoundResponse sends a not found error response
func NotFoundResponse(c *gin.Context, resource string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", resource+" not found", nil)
}

// UnauthorizedResponse sends an unauthorized error response
func UnauthorizedResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized access", nil)
}

// InvalidCredentialsResponse is the login failure response.
func InvalidCredentialsResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", nil)
}

// ConflictResponse sends a conflict error response
func ConflictResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, "CONFLICT", message, nil)
}

// BadGatewayResponse reports a failure of the upstream country API.
func BadGatewayResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadGateway, "UPSTREAM_ERROR", message, nil)
}

// ServiceUnavailableResponse reports a temporarily exhausted or stopped resource.
func ServiceUnavailableResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusServiceUnavailable, "UNAVAILABLE", message, nil)
}

// InternalErrorResponse sends an internal server error response
func InternalErrorResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

// CreatedResponse sends a created response
func CreatedResponse(c *gin.Context, message string, data interface{}) {
	SuccessResponse(c, http.StatusCreated, message, data)
}

// AcceptedResponse acknowledges work that completes later.
func AcceptedResponse(c *gin.Context, message string, data interface{}) {
	SuccessResponse(c, http.StatusAccepted, message, data)
}

// DeletedResponse sends a deleted response
func DeletedResponse(c *gin.Context, message string) {
	SuccessResponse(c, http.StatusOK, message, nil)
}

// ListResponse sends a list response with count metadata
func ListResponse(c *gin.Context, message string, data interface{}, count int) {
	SuccessResponseWithMeta(c, http.StatusOK, message, data, ListMeta{Count: count})
}

// DomainErrorResponse maps the shared error taxonomy to a response. resource names
// the thing that was not found; fallback is the message for unexpected errors.
func DomainErrorResponse(c *gin.Context, err error, resource, fallback string) {
	var vErr *validator.ValidationError
	switch {
	case errors.As(err, &vErr):
		ValidationErrorResponse(c, vErr)
	case errors.Is(err, models.ErrRecordNotFound):
		NotFoundResponse(c, resource)
	case errors.Is(err, models.ErrInvalidCredentials):
		InvalidCredentialsResponse(c)
	case errors.Is(err, models.ErrUnauthorized), errors.Is(err, models.ErrSessionNotFound):
		UnauthorizedResponse(c)
	case errors.Is(err, models.ErrAccountExists):
		ConflictResponse(c, err.Error())
	case errors.Is(err, models.ErrNetworkFailure), errors.Is(err, models.ErrAPIStatus):
		BadGatewayResponse(c, "Country data is temporarily unavailable")
	default:
		InternalErrorResponse(c, fallback)
	}
}
