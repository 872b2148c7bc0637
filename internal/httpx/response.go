// Package httpx provides the JSON response envelope and HTTP error catalog
// shared by all API handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Envelope is the standard JSON response body.
type Envelope struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a request failure. No stack traces, ever.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON writes v wrapped in the envelope with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Data: v})
}

// Error writes an error response. HTTPError values map to their own status
// and message; anything else becomes a 500 with a generic body so internal
// details never leak to clients.
func Error(w http.ResponseWriter, err error) {
	var httpErr HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = ErrInternal
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(httpErr.Status)
	_ = json.NewEncoder(w).Encode(Envelope{
		Error: &ErrorDetail{Code: httpErr.Code, Message: httpErr.Message},
	})
}
