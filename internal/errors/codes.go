package errors

import "net/http"

// Code classifies an error for callers and transports
type Code string

const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeDataLoss           Code = "DATA_LOSS"
	CodeInternal           Code = "INTERNAL"
)

// httpStatus maps codes to responses. A busy session is a conflict with its
// current state. An unreadable save document came from the client.
var httpStatus = map[Code]int{
	CodeOK:                 http.StatusOK,
	CodeCanceled:           http.StatusRequestTimeout,
	CodeDeadlineExceeded:   http.StatusGatewayTimeout,
	CodeInvalidArgument:    http.StatusBadRequest,
	CodeNotFound:           http.StatusNotFound,
	CodeFailedPrecondition: http.StatusConflict,
	CodeUnavailable:        http.StatusServiceUnavailable,
	CodeDataLoss:           http.StatusUnprocessableEntity,
	CodeInternal:           http.StatusInternalServerError,
}

func (c Code) String() string {
	return string(c)
}

// HTTPStatus returns the response status for c. Unknown codes are 500.
func (c Code) HTTPStatus() int {
	if status, ok := httpStatus[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Retryable reports whether the same request may succeed later: an engine or
// store that was down or slow
func (c Code) Retryable() bool {
	return c == CodeUnavailable || c == CodeDeadlineExceeded
}
