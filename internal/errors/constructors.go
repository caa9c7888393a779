package errors

// InvalidArgument is a malformed request: blank action, unknown setting, bad
// config
func InvalidArgument(message string) *Error { return New(CodeInvalidArgument, message) }

// InvalidArgumentf is InvalidArgument with a formatted message
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// NotFound is an unknown save slot or file
func NotFound(message string) *Error { return New(CodeNotFound, message) }

// NotFoundf is NotFound with a formatted message
func NotFoundf(format string, args ...any) *Error { return Newf(CodeNotFound, format, args...) }

// FailedPrecondition is a request the session cannot take in its current
// phase, most often because a turn is in flight
func FailedPrecondition(message string) *Error { return New(CodeFailedPrecondition, message) }

// FailedPreconditionf is FailedPrecondition with a formatted message
func FailedPreconditionf(format string, args ...any) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}

// Unavailable is an engine or store that could not serve the request
func Unavailable(message string) *Error { return New(CodeUnavailable, message) }

// Unavailablef is Unavailable with a formatted message
func Unavailablef(format string, args ...any) *Error { return Newf(CodeUnavailable, format, args...) }

// DataLoss is a save document or stored slot that cannot be decoded
func DataLoss(message string) *Error { return New(CodeDataLoss, message) }

// DataLossf is DataLoss with a formatted message
func DataLossf(format string, args ...any) *Error { return Newf(CodeDataLoss, format, args...) }

// Internal is a bug
func Internal(message string) *Error { return New(CodeInternal, message) }

// Internalf is Internal with a formatted message
func Internalf(format string, args ...any) *Error { return Newf(CodeInternal, format, args...) }
