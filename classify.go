package requestq

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// HTTPError carries an HTTP status through the retry loop. The
// retryable fetch client produces one for every response whose status
// is in the configured retryable set.
type HTTPError struct {
	// Status is the HTTP status code of the response.
	Status int

	// URL is the request URL, kept for logs and error messages.
	URL string
}

func (e *HTTPError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("requestq: http status %d", e.Status)
	}
	return fmt.Sprintf("requestq: http status %d from %s", e.Status, e.URL)
}

// HTTPStatus returns the carried status code.
func (e *HTTPError) HTTPStatus() int { return e.Status }

// statusCarrier is satisfied by errors that carry an HTTP status,
// directly or anywhere in their wrap chain.
type statusCarrier interface {
	HTTPStatus() int
}

// codeCarrier is satisfied by errors that carry a backend error code,
// such as a PostgREST code or an SQLSTATE.
type codeCarrier interface {
	ErrorCode() string
}

// errCodeAuthExpired is the PostgREST code for an expired auth token.
// The request succeeds once the client refreshes the session, so it is
// treated as transient.
const errCodeAuthExpired = "PGRST301"

// sqlstateConnClass is the SQLSTATE class for connection exceptions.
const sqlstateConnClass = "08"

// transientMessages are substrings that mark an error message as a
// generic network failure, fetch failure, or timeout.
var transientMessages = []string{
	"network",
	"fetch",
	"timeout",
	"timed out",
	"connection refused",
	"connection reset",
	"temporarily unavailable",
	"no such host",
}

// IsRetryable classifies an error as transient. An error is retryable
// if any of the following holds:
//
//   - it is a timeout (net.Error or context.DeadlineExceeded)
//   - it carries an HTTP status that is a member of statuses
//   - it carries a transient backend code (expired auth token,
//     connection-exception SQLSTATE class)
//   - its message signals a network failure, fetch failure, or timeout
//
// Everything else is fatal and is not retried regardless of the
// remaining attempt budget.
func IsRetryable(err error, statuses map[int]struct{}) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}

	var sc statusCarrier
	if errors.As(err, &sc) {
		if _, ok := statuses[sc.HTTPStatus()]; ok {
			return true
		}
	}

	var cc codeCarrier
	if errors.As(err, &cc) && isTransientCode(cc.ErrorCode()) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, s := range transientMessages {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

func isTransientCode(code string) bool {
	return code == errCodeAuthExpired || strings.HasPrefix(code, sqlstateConnClass)
}
