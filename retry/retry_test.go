package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ngofficial99/GeneralScaler/metrics"
)

func fastConfig() Config {
	return Config{
		MaxRetries:    3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

func TestRetryer_SucceedsFirstTry(t *testing.T) {
	r := New(fastConfig(), metrics.NewOperatorMetrics())

	calls := 0
	err := r.DoWithContext(context.Background(), "op", func(ctx context.Context) error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryer_RetriesUntilSuccess(t *testing.T) {
	r := New(fastConfig(), metrics.NewOperatorMetrics())

	calls := 0
	err := r.DoWithContext(context.Background(), "op", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryer_ExhaustsRetries(t *testing.T) {
	r := New(fastConfig(), metrics.NewOperatorMetrics())

	failure := errors.New("always failing")
	calls := 0
	err := r.DoWithContext(context.Background(), "op", func(ctx context.Context) error {
		calls++
		return failure
	})

	assert.ErrorIs(t, err, failure)
	assert.Equal(t, 4, calls) // initial attempt + 3 retries
}

func TestRetryer_StopsOnNonRetryableError(t *testing.T) {
	r := New(fastConfig(), metrics.NewOperatorMetrics())

	calls := 0
	err := r.DoWithContext(context.Background(), "op", func(ctx context.Context) error {
		calls++
		return NewRetryableError(errors.New("not found"), false)
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryer_HonorsContextCancellation(t *testing.T) {
	cfg := fastConfig()
	cfg.InitialDelay = time.Second
	r := New(cfg, metrics.NewOperatorMetrics())

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := r.DoWithContext(ctx, "op", func(ctx context.Context) error {
		calls++
		return errors.New("transient")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryableError_Unwrap(t *testing.T) {
	base := errors.New("base")
	err := NewRetryableError(base, true)

	assert.ErrorIs(t, err, base)
	assert.True(t, err.IsRetryable())
	assert.Equal(t, "base", err.Error())
}
