package responses

import (
	"errors"
	"net/http"

	"augeo-server/services/admin-api/internal/utils/platformerrors"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body every endpoint returns. The code is the
// call-site UUID from the PlatformError so a support ticket can be traced to
// the exact origin; the request id ties it to the access log line.
type ErrorResponse struct {
	Code          string `json:"code"` // UUID from PlatformError
	Error         string `json:"error"`
	Message       string `json:"message,omitempty"`
	ErrorInstance error  `json:"-"`
	RequestID     string `json:"request_id,omitempty"`
}

// HandleError maps a typed error onto its HTTP status: lifecycle and CAS
// conflicts become 409, size-limit violations 413, a disabled blob backend
// 503. Anything untyped is a 500 with the caller-supplied fallback message.
func HandleError(reqCtx *gin.Context, err error, message string) {
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		statusCode := platformerrors.ErrorTypeToHTTPStatus(platformErr.GetErrorType())

		errorMessage := platformErr.Message
		if errorMessage == "" {
			errorMessage = message
		}

		errResp := ErrorResponse{
			Code:          platformErr.GetUUID(),
			Error:         errorMessage,
			Message:       errorMessage,
			ErrorInstance: platformErr,
			RequestID:     platformErr.GetRequestID(),
		}

		reqCtx.AbortWithStatusJSON(statusCode, errResp)
		return
	}
	// Untyped errors never leak internals to the client.
	errResp := ErrorResponse{
		Error:         message,
		Message:       message,
		ErrorInstance: err,
	}
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, errResp)
}

// HandleNewError raises and responds with a route-layer error in one step,
// used for malformed path params and request bodies before any service call.
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string, uuid string) {
	ctx := reqCtx.Request.Context()
	err := platformerrors.NewError(ctx, platformerrors.LayerRoute, errorType, message, nil, uuid)

	statusCode := platformerrors.ErrorTypeToHTTPStatus(err.GetErrorType())

	errResp := ErrorResponse{
		Code:          err.GetUUID(),
		Error:         message,
		Message:       message,
		ErrorInstance: err,
		RequestID:     err.GetRequestID(),
	}

	reqCtx.AbortWithStatusJSON(statusCode, errResp)
}
