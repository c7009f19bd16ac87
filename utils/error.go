package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error kinds. Services return *AppError values carrying one of these so
// handlers can map them to a status code with errors.Is.
var (
	ErrValidation        = errors.New("validation error")
	ErrDoctorUnavailable = errors.New("doctor not available")
	ErrSlotConflict      = errors.New("slot already booked")
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid appointment transition")
	ErrConflict          = errors.New("conflict")
	ErrUpstream          = errors.New("upstream failure")
	// ErrInternal marks persistence and other server-side failures.
	ErrInternal = errors.New("internal error")
)

// AppError is an error with a kind, a user-safe message and an optional cause.
type AppError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *AppError) Is(target error) bool { return target == e.Kind }

func (e *AppError) Unwrap() error { return e.Cause }

// NewError builds an AppError of the given kind.
func NewError(kind error, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// WrapError builds an AppError that keeps the underlying cause for logging.
func WrapError(kind error, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

// StatusFor maps an error to the HTTP status it should be reported with.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDoctorUnavailable),
		errors.Is(err, ErrSlotConflict),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.Int("status", status), zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError reports err to the client. Errors without a kind are treated
// as internal and their text is not exposed.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	var appErr *AppError
	if !errors.As(err, &appErr) {
		GetLogger().Error("Unclassified error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
		return
	}
	if status >= http.StatusInternalServerError {
		GetLogger().Error(appErr.Error(), zap.String("path", c.Request.URL.Path), zap.NamedError("cause", appErr.Cause))
		c.JSON(status, ErrorResponse{Message: appErr.Error()})
		return
	}
	JSONError(c, status, appErr.Error(), "")
}
