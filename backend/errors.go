package backend

import (
	"errors"
	"fmt"
)

// ErrTransport wraps failures to reach the server or read its reply
var ErrTransport = errors.New("transport error")

// StatusError is a non-2xx HTTP response
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Endpoint, e.Code)
}

// APIError is a 2xx response whose envelope status is not "success"
type APIError struct {
	Endpoint string
	Status   string
	Message  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s reported status %q", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("%s reported status %q: %s", e.Endpoint, e.Status, e.Message)
}

// IsTransport reports whether err came from the network rather than the
// server's answer
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}
