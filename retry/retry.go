// Copyright (C) 2025 GeneralScaler contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package retry provides retry with exponential backoff for operations
// against the orchestrator API.
package retry

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/ngofficial99/GeneralScaler/logger"
	"github.com/ngofficial99/GeneralScaler/metrics"
)

// RetryableError marks an error as retryable or terminal
type RetryableError struct {
	Err       error
	Retryable bool
}

func (r *RetryableError) Error() string {
	return r.Err.Error()
}

func (r *RetryableError) Unwrap() error {
	return r.Err
}

// IsRetryable returns true if the error can be retried
func (r *RetryableError) IsRetryable() bool {
	return r.Retryable
}

// NewRetryableError creates a new retryable error
func NewRetryableError(err error, retryable bool) *RetryableError {
	return &RetryableError{Err: err, Retryable: retryable}
}

// Config holds retry configuration
type Config struct {
	MaxRetries          int
	InitialDelay        time.Duration
	MaxDelay            time.Duration
	BackoffFactor       float64
	RandomizationFactor float64
}

// DefaultConfig returns a default retry configuration
func DefaultConfig() Config {
	return Config{
		MaxRetries:          3,
		InitialDelay:        100 * time.Millisecond,
		MaxDelay:            10 * time.Second,
		BackoffFactor:       2.0,
		RandomizationFactor: 0.1,
	}
}

// FuncWithContext is a function that can be retried with context
type FuncWithContext func(ctx context.Context) error

// Retryer handles retry logic with exponential backoff
type Retryer struct {
	config  Config
	metrics *metrics.OperatorMetrics
}

// New creates a new Retryer
func New(config Config, m *metrics.OperatorMetrics) *Retryer {
	return &Retryer{config: config, metrics: m}
}

// DoWithContext executes the function, retrying retryable failures with
// exponential backoff until the context is done or retries are exhausted.
func (r *Retryer) DoWithContext(ctx context.Context, operation string, fn FuncWithContext) error {
	delay := r.config.InitialDelay
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		r.metrics.RecordRetryAttempt(operation, attempt+1)

		err := fn(ctx)
		if err == nil {
			if attempt > 0 {
				r.metrics.RecordRetrySuccess(operation)
				logger.Info("Operation %s succeeded after %d retries", operation, attempt)
			}
			return nil
		}
		lastErr = err

		if retryableErr, ok := err.(*RetryableError); ok && !retryableErr.IsRetryable() {
			logger.Warn("Operation %s failed with non-retryable error: %v", operation, err)
			return err
		}

		if attempt >= r.config.MaxRetries {
			logger.Error("Operation %s failed after %d attempts: %v", operation, attempt+1, err)
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.jitter(delay)):
		}

		delay = r.nextDelay(delay)
		logger.Debug("Retrying operation %s (attempt %d/%d)", operation, attempt+2, r.config.MaxRetries+1)
	}

	return lastErr
}

// nextDelay grows the delay by the backoff factor up to the maximum
func (r *Retryer) nextDelay(current time.Duration) time.Duration {
	next := time.Duration(float64(current) * r.config.BackoffFactor)
	if next > r.config.MaxDelay {
		next = r.config.MaxDelay
	}
	return next
}

// jitter randomizes the delay to avoid thundering herds
func (r *Retryer) jitter(d time.Duration) time.Duration {
	if r.config.RandomizationFactor <= 0 {
		return d
	}
	spread := r.config.RandomizationFactor * float64(d)
	offset := (rand.Float64()*2 - 1) * spread
	jittered := float64(d) + offset
	return time.Duration(math.Max(0, jittered))
}
