package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error with a stable machine-readable
// reason and a human-readable message.
type Error struct {
	Code    int    `json:"-"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, reason, message string, err error) *Error {
	return &Error{
		Code:    code,
		Reason:  reason,
		Message: message,
		Err:     err,
	}
}

// Reasons are the wire-stable identifiers for each error class.
const (
	ReasonValidation       = "validation_failed"
	ReasonNotFound         = "not_found"
	ReasonUnauthorized     = "unauthorized"
	ReasonForbidden        = "forbidden"
	ReasonConflict         = "conflict"
	ReasonUpstreamFailure  = "upstream_failure"
	ReasonSignatureInvalid = "signature_invalid"
	ReasonInternal         = "internal_error"
	ReasonRateLimited      = "rate_limited"
)

// Validation reports a missing or malformed request field.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, ReasonValidation, message, nil)
}

// NotFound reports an absent document for the given owner.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, ReasonNotFound, message, nil)
}

// Unauthorized reports a missing or invalid credential.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, ReasonUnauthorized, message, nil)
}

// Forbidden reports a valid credential with insufficient role.
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, ReasonForbidden, message, nil)
}

// Conflict reports a duplicate unique key.
func Conflict(message string, err error) *Error {
	return New(http.StatusConflict, ReasonConflict, message, err)
}

// Upstream reports a failed external call. The cause is logged, not exposed.
func Upstream(message string, err error) *Error {
	return New(http.StatusBadGateway, ReasonUpstreamFailure, message, err)
}

// SignatureInvalid reports a payment signature mismatch. It deliberately
// carries the same response shape as other validation failures.
func SignatureInvalid() *Error {
	return New(http.StatusBadRequest, ReasonSignatureInvalid, "Invalid payment signature", nil)
}

// Internal reports an unexpected or store failure.
func Internal(message string, err error) *Error {
	return New(http.StatusInternalServerError, ReasonInternal, message, err)
}

// From coerces any error into an *Error, defaulting to internal.
func From(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return New(http.StatusInternalServerError, ReasonInternal, "Internal server error", err)
}

// HandleError writes err to a plain http.ResponseWriter.
func HandleError(w http.ResponseWriter, err error) {
	appErr := From(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	w.Write([]byte(appErr.JSON()))
}

// ErrorMiddleware converts errors attached to the gin context into a JSON
// response with the stable reason and message.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			appErr := From(c.Errors.Last().Err)
			c.JSON(appErr.Code, appErr)
			c.Abort()
		}
	}
}
