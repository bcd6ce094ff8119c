package llm

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/complior/engine/internal/apperr"
	"github.com/complior/engine/internal/logger"
)

// RetryConfig controls exponential-backoff retry of a Client.Complete call.
type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig matches the backoff the teacher used for its
// validation-service calls; LLM completions see the same kind of
// transient failures (timeouts, rate limits).
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  1 * time.Second,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2.0,
	}
}

// Operation is a retryable unit of work.
type Operation func(ctx context.Context, attempt int) (string, error)

// Retry runs operation with exponential backoff, stopping early on any
// error that isn't marked Retryable. This is the only place in the engine
// that retries: the deterministic scan/fix/score path never does.
func Retry(ctx context.Context, cfg RetryConfig, log logger.Interface, operationName string, op Operation) (string, error) {
	log = log.WithComponent("llm-retry")
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		result, err := op(ctx, attempt)
		if err == nil {
			if attempt > 1 {
				log.Info("llm operation succeeded after retry", zap.String("operation", operationName), zap.Int("attempt", attempt))
			}
			return result, nil
		}
		lastErr = err

		if !isRetryable(err) {
			log.Warn("llm operation failed with non-retryable error", zap.String("operation", operationName), zap.Error(err))
			return "", err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		delay := backoffDelay(attempt, cfg)
		log.Warn("llm operation failed, retrying", zap.String("operation", operationName), zap.Int("attempt", attempt), zap.Duration("delay", delay), zap.Error(err))

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}

	log.Error("llm operation failed after all retry attempts", zap.String("operation", operationName), zap.Int("max_attempts", cfg.MaxAttempts), zap.Error(lastErr))
	return "", lastErr
}

func isRetryable(err error) bool {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae.Retryable
	}
	return false
}

func backoffDelay(attempt int, cfg RetryConfig) time.Duration {
	delay := float64(cfg.InitialDelay) * math.Pow(cfg.BackoffFactor, float64(attempt-1))
	if time.Duration(delay) > cfg.MaxDelay {
		return cfg.MaxDelay
	}
	return time.Duration(delay)
}

// CircuitState is the state of a CircuitBreaker.
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

// CircuitBreaker trips after a run of consecutive failures and short-circuits
// further calls until resetTimeout has elapsed, protecting a flaky LLM
// backend from being hammered by every incoming chat request.
type CircuitBreaker struct {
	maxFailures     int
	resetTimeout    time.Duration
	failureCount    int
	lastFailureTime time.Time
	state           CircuitState
}

func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{maxFailures: maxFailures, resetTimeout: resetTimeout, state: CircuitClosed}
}

// Allow reports whether a call may proceed, transitioning Open->HalfOpen
// once resetTimeout has passed.
func (cb *CircuitBreaker) Allow() bool {
	if cb.state != CircuitOpen {
		return true
	}
	if time.Since(cb.lastFailureTime) > cb.resetTimeout {
		cb.state = CircuitHalfOpen
		return true
	}
	return false
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.failureCount++
	cb.lastFailureTime = time.Now()
	if cb.failureCount >= cb.maxFailures {
		cb.state = CircuitOpen
	}
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.state = CircuitClosed
	cb.failureCount = 0
}
