package resolver

import (
	"context"
	"errors"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/mikey/contact-email-guesser/internal/core"
	"go.uber.org/zap"
)

// RetryResolver retries a model-backed resolver on transient failures
type RetryResolver struct {
	inner    core.DomainResolver
	attempts uint
	delay    time.Duration
	logger   *zap.Logger
}

// NewRetryResolver wraps inner so that each resolution is tried up to attempts times
func NewRetryResolver(inner core.DomainResolver, attempts int, delay time.Duration, logger *zap.Logger) *RetryResolver {
	if attempts < 1 {
		attempts = 1
	}
	return &RetryResolver{
		inner:    inner,
		attempts: uint(attempts),
		delay:    delay,
		logger:   logger,
	}
}

// ResolveDomain calls the wrapped resolver, retrying with jittered backoff
func (r *RetryResolver) ResolveDomain(ctx context.Context, companyName string) (*core.DomainResolution, error) {
	return retry.DoWithData(
		func() (*core.DomainResolution, error) {
			return r.inner.ResolveDomain(ctx, companyName)
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.MaxJitter(r.delay/2),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			r.logger.Debug("Retrying domain resolution",
				zap.Uint("attempt", n+1),
				zap.String("company", companyName),
				zap.Error(err))
		}),
	)
}

// Close closes the wrapped resolver if it holds resources
func (r *RetryResolver) Close() error {
	if closer, ok := r.inner.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// isRetryable reports whether a failure may succeed on another attempt.
// Unusable model answers are not retried.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return !errors.Is(err, errInvalidResponse)
}
