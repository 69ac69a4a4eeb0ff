package store

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
)

// RetryConfig describes the exponential backoff applied to retryable remote
// store failures.
type RetryConfig struct {
	MaxRetries    uint64
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	JitterPercent uint64
}

// DefaultRetryConfig keeps the worst case well inside one cloud sync
// interval.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		BaseDelay:     200 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		JitterPercent: 10,
	}
}

func (c RetryConfig) backoff() retry.Backoff {
	backoff := retry.NewExponential(max(c.BaseDelay, time.Nanosecond))
	backoff = retry.WithMaxRetries(c.MaxRetries, backoff)
	if c.MaxDelay > 0 {
		backoff = retry.WithCappedDuration(c.MaxDelay, backoff)
	}
	if c.JitterPercent > 0 {
		backoff = retry.WithJitterPercent(c.JitterPercent, backoff)
	}
	return backoff
}

// withRetry runs operation, retrying only the failures classify marks
// [Retryable]. The last error is returned unchanged.
func withRetry(ctx context.Context, cfg RetryConfig, classify ErrorClassificator, name string, operation func(ctx context.Context) error) error {
	attempt := 0
	return retry.Do(ctx, cfg.backoff(), func(ctx context.Context) error {
		attempt++
		err := operation(ctx)
		if err == nil {
			return nil
		}
		if classify == nil || classify.Classify(err) != Retryable {
			return err
		}

		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "withRetry").
			Str("operation", name).
			Int("attempt", attempt).
			Msg("retryable remote store failure")
		return retry.RetryableError(err)
	})
}
