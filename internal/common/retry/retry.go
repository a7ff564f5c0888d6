package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go"
	log "github.com/sirupsen/logrus"
)

// Policy controls how often, and how patiently, a failing action is retried.
// Backoff doubles after every failed attempt, starting at InitialBackoff and capped at MaxBackoff.
type Policy struct {
	// Total number of attempts, including the first one.
	MaxAttempts    uint
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	// Decides whether an error is worth another attempt. Defaults to Always.
	RetryIf func(error) bool
	// Called before every retry with the number of the attempt that just failed (starting at 1).
	OnRetry func(attempt uint, err error)
}

// Always treats every error as retryable.
func Always(error) bool {
	return true
}

// Do runs action until it succeeds, the policy gives up or ctx is done.
// The error returned is the one produced by the last attempt.
func (p Policy) Do(ctx context.Context, action func() error) error {
	retryIf := p.RetryIf
	if retryIf == nil {
		retryIf = Always
	}
	onRetry := p.OnRetry
	if onRetry == nil {
		onRetry = func(attempt uint, err error) {
			log.WithError(err).Warnf("Attempt %d of %d failed", attempt, p.attempts())
		}
	}
	opts := append(p.delayOptions(),
		retry.Context(ctx),
		retry.Attempts(p.attempts()),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryIf),
		retry.OnRetry(func(n uint, err error) {
			onRetry(n+1, err)
		}),
	)
	return retry.Do(action, opts...)
}

// Without an initial backoff retries follow each other immediately.
func (p Policy) delayOptions() []retry.Option {
	if p.InitialBackoff <= 0 {
		return []retry.Option{retry.Delay(0), retry.DelayType(retry.FixedDelay)}
	}
	return []retry.Option{
		retry.Delay(p.InitialBackoff),
		retry.MaxDelay(p.MaxBackoff),
		retry.DelayType(retry.BackOffDelay),
	}
}

// a zero policy still runs the action once
func (p Policy) attempts() uint {
	if p.MaxAttempts == 0 {
		return 1
	}
	return p.MaxAttempts
}
