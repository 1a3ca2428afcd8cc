package platformerrors

import (
	"context"
	"fmt"
	"net/http"
)

// Layer identifies where in the stack an error was raised.
type Layer string

const (
	LayerRoute      Layer = "route"
	LayerDomain     Layer = "domain"
	LayerRepository Layer = "repository"
	LayerInfra      Layer = "infrastructure"
)

// ErrorType classifies an error for HTTP status mapping and client handling.
type ErrorType string

const (
	ErrorTypeValidation          ErrorType = "validation_error"
	ErrorTypeNotFound            ErrorType = "not_found"
	ErrorTypeInvalidState        ErrorType = "invalid_state_transition"
	ErrorTypeSizeLimitExceeded   ErrorType = "size_limit_exceeded"
	ErrorTypeUnsupportedType     ErrorType = "unsupported_type"
	ErrorTypeStorageUnavailable  ErrorType = "storage_unavailable"
	ErrorTypeNotificationFailed  ErrorType = "notification_delivery_failed"
	ErrorTypeConflict            ErrorType = "conflict"
	ErrorTypeUnauthorized        ErrorType = "unauthorized"
	ErrorTypeForbidden           ErrorType = "forbidden"
	ErrorTypeDatabaseError       ErrorType = "database_error"
	ErrorTypeInternal            ErrorType = "internal_error"
)

type requestIDKey struct{}

// WithRequestID attaches a request id to the context for error correlation.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id attached by the middleware, if any.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// PlatformError is the typed error carried across layers. Every call site
// passes a stable UUID so a log line can be traced back to the exact origin.
type PlatformError struct {
	Layer     Layer
	Type      ErrorType
	Message   string
	Err       error
	UUID      string
	RequestID string
}

// NewError builds a PlatformError, capturing the request id from ctx.
func NewError(ctx context.Context, layer Layer, errType ErrorType, message string, err error, uuid string) *PlatformError {
	return &PlatformError{
		Layer:     layer,
		Type:      errType,
		Message:   message,
		Err:       err,
		UUID:      uuid,
		RequestID: RequestIDFromContext(ctx),
	}
}

func (e *PlatformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s/%s] %s: %v", e.Layer, e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s/%s] %s", e.Layer, e.Type, e.Message)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

func (e *PlatformError) GetErrorType() ErrorType {
	return e.Type
}

func (e *PlatformError) GetUUID() string {
	return e.UUID
}

func (e *PlatformError) GetRequestID() string {
	return e.RequestID
}

// ErrorTypeToHTTPStatus maps an ErrorType onto the HTTP status the route
// layer should return.
func ErrorTypeToHTTPStatus(errType ErrorType) int {
	switch errType {
	case ErrorTypeValidation, ErrorTypeUnsupportedType:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeInvalidState, ErrorTypeConflict:
		return http.StatusConflict
	case ErrorTypeSizeLimitExceeded:
		return http.StatusRequestEntityTooLarge
	case ErrorTypeStorageUnavailable:
		return http.StatusServiceUnavailable
	case ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case ErrorTypeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
