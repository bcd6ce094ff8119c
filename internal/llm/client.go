// Package llm provides the chat/explain collaborator used by the `chat`
// transport endpoint and the complior_explain/complior_classify tool calls.
// It never produces or adjusts compliance findings itself; its only job is
// turning findings the deterministic scan engine already produced into
// prose, or answering free-form questions about them.
package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/complior/engine/internal/apperr"
	"github.com/complior/engine/internal/logger"
)

// Client is the minimal surface every LLM backend implements.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// FallbackClient tries each backend in order, returning the first
// successful completion.
type FallbackClient struct {
	clients []Client
	log     logger.Interface
}

func NewFallbackClient(log logger.Interface, clients ...Client) *FallbackClient {
	return &FallbackClient{clients: clients, log: log}
}

func (f *FallbackClient) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for i, c := range f.clients {
		resp, err := c.Complete(ctx, prompt)
		if err == nil {
			return resp, nil
		}
		if f.log != nil {
			f.log.Warn("llm backend failed, trying next", zap.Int("backend", i), zap.Error(err))
		}
		lastErr = err
	}
	return "", fmt.Errorf("all llm backends failed: %w", lastErr)
}

// RetryingClient wraps a backend with exponential-backoff retry and a
// circuit breaker, so a single flaky provider doesn't immediately push
// every request onto the next entry in a FallbackClient's chain.
type RetryingClient struct {
	inner   Client
	cfg     RetryConfig
	breaker *CircuitBreaker
	log     logger.Interface
	name    string
}

func NewRetryingClient(name string, inner Client, log logger.Interface) *RetryingClient {
	return &RetryingClient{
		inner:   inner,
		cfg:     DefaultRetryConfig(),
		breaker: NewCircuitBreaker(5, 30_000_000_000), // 30s
		log:     log,
		name:    name,
	}
}

func (r *RetryingClient) Complete(ctx context.Context, prompt string) (string, error) {
	if !r.breaker.Allow() {
		return "", apperrCircuitOpen(r.name)
	}
	result, err := Retry(ctx, r.cfg, r.log, r.name, func(ctx context.Context, attempt int) (string, error) {
		return r.inner.Complete(ctx, prompt)
	})
	if err != nil {
		r.breaker.RecordFailure()
		return "", err
	}
	r.breaker.RecordSuccess()
	return result, nil
}

func apperrCircuitOpen(name string) error {
	return apperr.New(apperr.KindLLM, "llm_circuit_open", name+" is temporarily unavailable after repeated failures").WithRetryable(true)
}
