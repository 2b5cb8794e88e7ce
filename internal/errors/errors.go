package errors

import (
	"net/http"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/logger"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Error code constants for standardized error responses
const (
	ErrNotFound            = "NOT_FOUND"
	ErrBadRequest          = "BAD_REQUEST"
	ErrConflict            = "CONFLICT"
	ErrInternalServer      = "INTERNAL_SERVER_ERROR"
	ErrValidation          = "VALIDATION_ERROR"
	ErrUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ErrDatabaseConnection  = "DATABASE_CONNECTION_ERROR"
)

// ErrorResponse is the top-level error response structure.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// respond writes the error envelope and aborts the handler chain.
func respond(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: middleware.GetRequestID(c),
		},
	})
}

// baseFields are attached to every error log line.
func baseFields(c *gin.Context, message string) map[string]interface{} {
	return map[string]interface{}{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
		"path":       c.Request.URL.Path,
	}
}

func requestLogger(c *gin.Context) *logger.Logger {
	if log := middleware.GetLogger(c); log != nil {
		return log
	}
	return logger.Nop()
}

// NotFound returns a 404 Not Found error response.
func NotFound(c *gin.Context, message string) {
	requestLogger(c).Warn("Resource not found", baseFields(c, message))
	respond(c, http.StatusNotFound, ErrNotFound, message, nil)
}

// BadRequest returns a 400 Bad Request error response with optional details.
func BadRequest(c *gin.Context, message string, details map[string]interface{}) {
	fields := baseFields(c, message)
	if details != nil {
		fields["details"] = details
	}
	requestLogger(c).Warn("Bad request", fields)
	respond(c, http.StatusBadRequest, ErrBadRequest, message, details)
}

// Conflict returns a 409 Conflict response for writes refused by an
// integrity rule, such as deleting a price that leases still reference.
func Conflict(c *gin.Context, message string, details map[string]interface{}) {
	fields := baseFields(c, message)
	if details != nil {
		fields["details"] = details
	}
	requestLogger(c).Warn("Conflict", fields)
	respond(c, http.StatusConflict, ErrConflict, message, details)
}

// UpstreamUnavailable returns a 502 Bad Gateway response when a dependency
// such as the pricing service cannot be reached or answers malformed data.
// The cause is logged but never sent to the client.
func UpstreamUnavailable(c *gin.Context, message string, err error) {
	fields := baseFields(c, message)
	fields["method"] = c.Request.Method
	requestLogger(c).Error("Upstream unavailable", err, fields)
	respond(c, http.StatusBadGateway, ErrUpstreamUnavailable, message, nil)
}

// InternalServerError returns a 500 Internal Server Error response.
// The actual error is logged and not exposed to the client.
func InternalServerError(c *gin.Context, message string, err error) {
	fields := baseFields(c, message)
	fields["method"] = c.Request.Method
	requestLogger(c).Error("Internal server error", err, fields)
	respond(c, http.StatusInternalServerError, ErrInternalServer, message, nil)
}

// ValidationError returns a 400 Bad Request error response with field-specific validation errors.
func ValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	details := make(map[string]interface{})
	for _, err := range validationErrors {
		details[err.Field()] = formatValidationError(err)
	}

	requestLogger(c).Warn("Validation error", map[string]interface{}{
		"request_id": middleware.GetRequestID(c),
		"path":       c.Request.URL.Path,
		"fields":     details,
	})

	respond(c, http.StatusBadRequest, ErrValidation, "Validation failed for one or more fields", details)
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Value is too short or small (minimum: " + err.Param() + ")"
	case "max":
		return "Value is too long or large (maximum: " + err.Param() + ")"
	case "len":
		return "Must have length of " + err.Param()
	case "gt":
		return "Must be greater than " + err.Param()
	case "gte":
		return "Must be greater than or equal to " + err.Param()
	case "lt":
		return "Must be less than " + err.Param()
	case "lte":
		return "Must be less than or equal to " + err.Param()
	case "oneof":
		return "Must be one of: " + err.Param()
	case "numeric":
		return "Must be numeric"
	case "datetime":
		return "Must be a date in " + err.Param() + " format"
	case "decimal_gt0":
		return "Must be a decimal number greater than 0"
	case "decimal_gte0":
		return "Must be a decimal number greater than or equal to 0"
	default:
		return "Validation failed for tag: " + err.Tag()
	}
}
