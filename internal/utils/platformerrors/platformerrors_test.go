package platformerrors

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestNewErrorCapturesRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req_abc123")

	err := NewError(ctx, LayerDomain, ErrorTypeValidation, "bad input", nil, "uuid-1")
	if err.GetRequestID() != "req_abc123" {
		t.Fatalf("request id = %q, want req_abc123", err.GetRequestID())
	}
	if err.GetUUID() != "uuid-1" {
		t.Fatalf("uuid = %q, want uuid-1", err.GetUUID())
	}
}

func TestErrorStringIncludesLayerAndType(t *testing.T) {
	err := NewError(context.Background(), LayerRepository, ErrorTypeNotFound, "media missing", nil, "uuid-2")

	msg := err.Error()
	if !strings.Contains(msg, string(LayerRepository)) || !strings.Contains(msg, string(ErrorTypeNotFound)) {
		t.Fatalf("error string missing layer or type: %q", msg)
	}
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := NewError(context.Background(), LayerInfra, ErrorTypeInternal, "write failed", cause, "uuid-3")

	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause not reachable via errors.Is")
	}
}

func TestErrorTypeToHTTPStatus(t *testing.T) {
	cases := []struct {
		errType ErrorType
		want    int
	}{
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeUnsupportedType, http.StatusBadRequest},
		{ErrorTypeNotFound, http.StatusNotFound},
		{ErrorTypeInvalidState, http.StatusConflict},
		{ErrorTypeConflict, http.StatusConflict},
		{ErrorTypeSizeLimitExceeded, http.StatusRequestEntityTooLarge},
		{ErrorTypeStorageUnavailable, http.StatusServiceUnavailable},
		{ErrorTypeUnauthorized, http.StatusUnauthorized},
		{ErrorTypeForbidden, http.StatusForbidden},
		{ErrorTypeDatabaseError, http.StatusInternalServerError},
		{ErrorTypeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := ErrorTypeToHTTPStatus(tc.errType); got != tc.want {
			t.Errorf("ErrorTypeToHTTPStatus(%s) = %d, want %d", tc.errType, got, tc.want)
		}
	}
}

func TestRequestIDFromContextMissing(t *testing.T) {
	if id := RequestIDFromContext(context.Background()); id != "" {
		t.Fatalf("expected empty request id, got %q", id)
	}
}
