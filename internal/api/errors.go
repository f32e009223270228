package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
)

var (
	// ErrTimeout is returned when a call exceeds the configured timeout
	ErrTimeout = errors.New("request timed out")
	// ErrCancelled is returned when the caller cancelled the call
	ErrCancelled = errors.New("request cancelled")
)

// StatusError is returned for any non-2xx response
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

// transportError maps context failures to ErrTimeout/ErrCancelled
func transportError(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case errors.Is(ctx.Err(), context.Canceled):
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("request failed: %w", err)
}

// Reason renders the short failure reason shown to the user: the numeric
// status for HTTP failures, otherwise a one-word description.
func Reason(err error) string {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		return strconv.Itoa(statusErr.Code)
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrCancelled):
		return "cancelled"
	case err == nil:
		return ""
	}
	return err.Error()
}
