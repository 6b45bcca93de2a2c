package api

import (
	"errors"
	"fmt"
)

// TransportError reports a request that did not yield a usable 2xx JSON
// response: the network call failed, the backend answered with a non-2xx
// status, or the body could not be decoded.
type TransportError struct {
	// Endpoint is the backend endpoint name ("cart", "login", ...).
	Endpoint string
	// StatusCode is the HTTP status, 0 if no response was received.
	StatusCode int
	// Body is the trimmed response body of a non-2xx answer.
	Body string
	// Err is the underlying cause, if any.
	Err error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("api %s: %v", e.Endpoint, e.Err)
	case e.Body != "":
		return fmt.Sprintf("api %s: status %d: %s", e.Endpoint, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("api %s: status %d", e.Endpoint, e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is or wraps a *TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var te *TransportError
	if errors.As(err, &te) {
		return te.StatusCode
	}
	return 0
}
