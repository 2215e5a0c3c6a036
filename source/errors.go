package source

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport is matched by every network or protocol fetch failure
	ErrTransport = errors.New("transport error")

	// ErrTimeout is matched by every fetch that ran out of time
	ErrTimeout = errors.New("timeout")
)

// TransportError is a network / protocol level fetch failure
type TransportError struct {
	Err        error
	Source     string
	URL        string
	StatusCode int
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s: invalid status code received: %d", e.Source, e.URL, e.StatusCode)
	}

	return fmt.Sprintf("%s: %s: %v", e.Source, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// TimeoutError is a fetch that did not complete within its bounded wait
type TimeoutError struct {
	Err     error
	Source  string
	URL     string
	Timeout string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: %s: timed out after %s", e.Source, e.URL, e.Timeout)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}
