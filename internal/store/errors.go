package store

import (
	"errors"
	"fmt"
	"net/http"
)

// RemoteError is the failure of a store round trip.
// StatusCode is the HTTP status of a non-2xx response, or 0 when no usable
// response was received (transport failure, undecodable body).
type RemoteError struct {
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("remote error %d: %v", e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("remote error %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	case e.Err != nil:
		return fmt.Sprintf("remote error: %v", e.Err)
	}
	return "remote error"
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// StatusCode extracts the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}

// IsAuth reports whether err was an authentication or authorization rejection.
func IsAuth(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}
