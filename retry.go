package requestq

import (
	"context"
	"math"
	"time"

	boff "github.com/Andrej220/go-utils/backoff"
	lg "github.com/Andrej220/go-utils/zlog"
)

const (
	defaultMaxRetries   = 3
	defaultInitialDelay = 1 * time.Second
	defaultMaxDelay     = 10 * time.Second
	defaultMultiplier   = 2.0
)

// DefaultRetryableStatuses returns the HTTP statuses retried by
// default: request timeout, rate limiting, and the transient 5xx
// family.
func DefaultRetryableStatuses() map[int]struct{} {
	return map[int]struct{}{
		408: {},
		429: {},
		500: {},
		502: {},
		503: {},
		504: {},
	}
}

// RetryOptions configure WithRetry.
// Zero values are replaced with defaults in FillDefaults.
type RetryOptions struct {
	// MaxRetries is the number of re-invocations after the first
	// attempt, so up to MaxRetries+1 total attempts.
	MaxRetries int

	// InitialDelay is the wait before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the computed delay.
	MaxDelay time.Duration

	// BackoffMultiplier scales the delay between successive retries.
	BackoffMultiplier float64

	// RetryableStatuses is the set of HTTP statuses classified as
	// transient.
	RetryableStatuses map[int]struct{}

	// ShouldRetry, if set, can veto a retry that classification would
	// allow. It never forces a retry of a fatal error.
	ShouldRetry func(err error, attempt int) bool

	// OnRetry is invoked before each backoff wait, e.g. for logging or
	// counting.
	OnRetry func(err error, attempt int)

	// Jitter randomizes the delays. The deterministic exponential
	// curve is the default; enable this when many clients retry
	// against the same endpoint.
	Jitter bool
}

func (o *RetryOptions) FillDefaults() {
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetries
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = defaultInitialDelay
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = defaultMaxDelay
	}
	if o.MaxDelay < o.InitialDelay {
		o.MaxDelay = o.InitialDelay
	}
	if o.BackoffMultiplier < 1 {
		o.BackoffMultiplier = defaultMultiplier
	}
	if o.RetryableStatuses == nil {
		o.RetryableStatuses = DefaultRetryableStatuses()
	}
}

// delayFor computes the wait before retry number attempt (1-indexed):
// min(InitialDelay * BackoffMultiplier^(attempt-1), MaxDelay).
// Overflow of the float math lands on MaxDelay.
func (o *RetryOptions) delayFor(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := float64(o.InitialDelay) * math.Pow(o.BackoffMultiplier, float64(attempt-1))
	if math.IsNaN(d) || d < 0 || d >= float64(o.MaxDelay) {
		return o.MaxDelay
	}
	return time.Duration(d)
}

// WithRetry invokes fn until it succeeds, the attempt budget is spent,
// or a failure is classified as fatal.
//
// Attempt 1 runs immediately. On a retryable failure the runner waits
// for the backoff delay, then re-invokes fn. The last underlying error
// is returned as-is: never wrapped, whether the budget ran out or
// classification stopped the loop. Cancelling ctx during a backoff
// wait returns ctx.Err().
func WithRetry[T any](ctx context.Context, fn func(ctx context.Context) (T, error), opts RetryOptions) (T, error) {
	opts.FillDefaults()
	logger := lg.FromContext(ctx)

	var jitterNext func() time.Duration
	if opts.Jitter {
		bo := boff.New(opts.InitialDelay, opts.MaxDelay, time.Now().UnixNano())
		jitterNext = bo.Next
	}

	var zero T
	var lastErr error
	for attempt := 1; attempt <= opts.MaxRetries+1; attempt++ {
		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}
		lastErr = err

		if attempt == opts.MaxRetries+1 {
			break
		}
		if !IsRetryable(err, opts.RetryableStatuses) {
			return zero, err
		}
		if opts.ShouldRetry != nil && !opts.ShouldRetry(err, attempt) {
			return zero, err
		}
		if opts.OnRetry != nil {
			opts.OnRetry(err, attempt)
		}

		delay := opts.delayFor(attempt)
		if jitterNext != nil {
			delay = jitterNext()
		}
		logger.Warn("attempt failed; backing off",
			lg.Int("attempt", attempt),
			lg.String("sleep", delay.String()),
			lg.Any("error", err),
		)
		if err := sleepContext(ctx, delay); err != nil {
			return zero, err
		}
	}

	logger.Error("retries exhausted",
		lg.Int("attempts", opts.MaxRetries+1),
		lg.Any("error", lastErr),
	)
	return zero, lastErr
}

// sleepContext waits for d but respects context cancellation.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
