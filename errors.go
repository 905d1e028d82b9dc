package requestq

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrQueueCleared is returned through the futures of requests that
	// were still waiting when Clear or Shutdown was called.
	ErrQueueCleared = errors.New("requestq: queue cleared")

	// ErrQueueClosed is returned by Enqueue after Shutdown.
	ErrQueueClosed = errors.New("requestq: queue closed")

	// ErrNilOperation is returned when a submitted Request has a nil Op.
	ErrNilOperation = errors.New("requestq: operation is nil")
)

// TimeoutError settles the future of an admitted request whose
// operation did not return within the configured timeout.
//
// The operation itself is not interrupted; see the package
// documentation on the timeout model.
type TimeoutError struct {
	// ID identifies the timed-out request.
	ID string

	// Timeout is the configured per-request timeout that elapsed.
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("requestq: request %s timed out after %s", e.ID, e.Timeout)
}
