package httpx

import "net/http"

// HTTPError carries an HTTP status code together with a stable machine
// code and a human-readable message for the response body.
type HTTPError struct {
	Status  int
	Code    string
	Message string
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

var (
	ErrBadRequest   = HTTPError{Status: http.StatusBadRequest, Code: "bad_request", Message: "Bad request"}
	ErrUnauthorized = HTTPError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "Unauthorized"}
	ErrForbidden    = HTTPError{Status: http.StatusForbidden, Code: "forbidden", Message: "Access denied"}
	ErrNotFound     = HTTPError{Status: http.StatusNotFound, Code: "not_found", Message: "Not found"}
	ErrConflict     = HTTPError{Status: http.StatusConflict, Code: "conflict", Message: "Conflict"}
	ErrInternal     = HTTPError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "Internal server error"}
)

// NewHTTPError creates a custom HTTP error.
func NewHTTPError(status int, code, message string) HTTPError {
	return HTTPError{Status: status, Code: code, Message: message}
}
