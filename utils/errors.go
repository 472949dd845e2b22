package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ApiError is an error with an HTTP status and machine-readable code.
type ApiError struct {
	StatusCode int
	Message    string
	ErrorCode  string
}

// Error implements the error interface.
func (e *ApiError) Error() string {
	return e.Message
}

// NewApiError creates an ApiError.
func NewApiError(message string, statusCode int, errorCode string) *ApiError {
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
		ErrorCode:  errorCode,
	}
}

// CreateNotFoundError builds a 404 for a missing resource.
func CreateNotFoundError(resource string) *ApiError {
	return NewApiError(resource+" not found", http.StatusNotFound, "RESOURCE_NOT_FOUND")
}

// CreateUnauthorizedError builds a 401.
func CreateUnauthorizedError(message string) *ApiError {
	if message == "" {
		message = "unauthorized"
	}
	return NewApiError(message, http.StatusUnauthorized, "UNAUTHORIZED")
}

// CreateForbiddenError builds a 403.
func CreateForbiddenError() *ApiError {
	return NewApiError("forbidden", http.StatusForbidden, "FORBIDDEN")
}

// CreateBadRequestError builds a 400.
func CreateBadRequestError(message string) *ApiError {
	return NewApiError(message, http.StatusBadRequest, "BAD_REQUEST")
}

// CreateServiceUnavailableError builds a 503 for an optional dependency
// that is not configured. Billing is an optional capability, so its
// absence is a first-class state rather than a fault.
func CreateServiceUnavailableError(service string) *ApiError {
	return NewApiError(service+" is not configured", http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE")
}

// HandleError logs err and writes the matching response. Handlers route all
// unexpected faults through here so a raw error never escapes the boundary.
func HandleError(c *gin.Context, err error) {
	if c == nil {
		return
	}
	errorMessage := err.Error()
	Logger.Error().
		Str("path", c.Request.URL.Path).
		Str("method", c.Request.Method).
		Msg("api error: " + errorMessage)

	if apiErr, ok := err.(*ApiError); ok {
		response := gin.H{"success": false, "error": apiErr.Message}
		if apiErr.ErrorCode != "" {
			response["code"] = apiErr.ErrorCode
		}
		c.JSON(apiErr.StatusCode, response)
		return
	}

	// Unexpected fault: generic 500, diagnostic stays in the log.
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "internal error",
	})
}

// SuccessResponse writes a success envelope.
func SuccessResponse(c *gin.Context, data interface{}, message string, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := gin.H{"success": true}
	if data != nil {
		response["data"] = data
	}
	if message != "" {
		response["message"] = message
	}

	c.JSON(code, response)
}

// ErrorResponse writes an error envelope with the given status.
func ErrorResponse(c *gin.Context, message string, statusCode int) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}
