package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeUnimplemented      Code = "UNIMPLEMENTED"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeDataLoss           Code = "DATA_LOSS"

	// CodeNetwork marks a transport failure or a non-2xx response from an
	// upstream HTTP API.
	CodeNetwork Code = "NETWORK"
	// CodeMalformedResponse marks an upstream body that does not have the
	// expected shape.
	CodeMalformedResponse Code = "MALFORMED_RESPONSE"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}
