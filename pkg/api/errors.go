package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is returned for any 401 response. The client clears its
// session store before returning it; deciding what to show the user (or where
// to navigate) is the caller's job, not the HTTP layer's.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is the backend's standard error body for non-2xx responses.
type APIError struct {
	StatusCode int    `json:"-"`
	Timestamp  string `json:"timestamp"`
	Status     int    `json:"status"`
	ErrorText  string `json:"error"`
	Message    string `json:"message"`
	Path       string `json:"path"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}
