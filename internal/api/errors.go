package api

import (
	"encoding/json"
	"errors"
	"net/http"
)

// DefaultErrorMessage is used when a failed response carries no error field.
const DefaultErrorMessage = "Request failed"

// RequestError reports a non-2xx response or a transport failure.
// Status is zero when no response was received.
type RequestError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

// Error returns the server-provided message or the fallback.
func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return DefaultErrorMessage
}

// Unwrap exposes the transport error, if any.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Status == http.StatusNotFound
}

// decodeHTTPError extracts the server's error message from a failed response.
func decodeHTTPError(method, path string, status int, body []byte) *RequestError {
	reqErr := &RequestError{Method: method, Path: path, Status: status, Message: DefaultErrorMessage}
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != "" {
		reqErr.Message = resp.Error
	}
	return reqErr
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
