package apperr

import "net/http"

// Business error codes shared with API clients. The code families mirror HTTP
// status classes but carry finer-grained meaning in the response envelope.
const (
	CodeSuccess         = 0
	CodeParamsError     = 40000
	CodeNotLogin        = 40100
	CodeNoAuth          = 40300
	CodeNotFound        = 40400
	CodeSystemError     = 50000
	CodeOperationFailed = 50001
)

// Error is a typed business error carrying an envelope code.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus returns the HTTP status the code maps to. CodeOperationFailed is a
// 400-class failure (business precondition), not a server error.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeParamsError, CodeOperationFailed:
		return http.StatusBadRequest
	case CodeNotLogin:
		return http.StatusUnauthorized
	case CodeNoAuth:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Invalid reports malformed, missing or conflicting input.
func Invalid(message string) *Error {
	return &Error{Code: CodeParamsError, Message: message}
}

// NotLogin reports a request without an authenticated session.
func NotLogin() *Error {
	return &Error{Code: CodeNotLogin, Message: "not logged in"}
}

// NoAuth reports an authenticated request lacking privilege.
func NoAuth(message string) *Error {
	return &Error{Code: CodeNoAuth, Message: message}
}

// NotFound reports a missing resource.
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

// Failed reports a failed business precondition, e.g. wrong credentials.
func Failed(message string) *Error {
	return &Error{Code: CodeOperationFailed, Message: message}
}

// Internal reports an unexpected failure. The message is a generic placeholder;
// the real cause is logged at the boundary and never echoed to the caller.
func Internal() *Error {
	return &Error{Code: CodeSystemError, Message: "internal server error"}
}
