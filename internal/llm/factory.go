package llm

import (
	"context"
	"errors"

	"github.com/complior/engine/internal/config"
	"github.com/complior/engine/internal/logger"
)

// ErrNoProvider is returned by the NoopClient when no LLM backend is
// configured, so `chat` and complior_explain can surface a clear message
// instead of silently hanging.
var ErrNoProvider = errors.New("no LLM provider configured: set OPENAI_API_KEY or GROQ_API_KEY")

// NoopClient is used when the deployment has no LLM credentials. The
// deterministic scan/fix/score path never depends on this package, so its
// absence only disables `chat` and the explain/classify tool calls.
type NoopClient struct{}

func (NoopClient) Complete(ctx context.Context, prompt string) (string, error) {
	return "", ErrNoProvider
}

// New builds a Client from the engine configuration, preferring the
// provider named by COMPLIOR_LLM_PROVIDER and falling back across
// whichever API keys are present.
func New(cfg config.EngineConfig, log logger.Interface) Client {
	var clients []Client

	tryOpenAI := func() {
		if cfg.OpenAIAPIKey == "" {
			return
		}
		if c, err := NewOpenAIClient(cfg.OpenAIAPIKey); err == nil {
			clients = append(clients, NewRetryingClient("openai", c, log))
		}
	}
	tryGroq := func() {
		if cfg.GroqAPIKey == "" {
			return
		}
		if c, err := NewGroqClient(cfg.GroqAPIKey); err == nil {
			clients = append(clients, NewRetryingClient("groq", c, log))
		}
	}

	if cfg.LLMProvider == "groq" {
		tryGroq()
		tryOpenAI()
	} else {
		tryOpenAI()
		tryGroq()
	}

	if len(clients) == 0 {
		return NoopClient{}
	}
	if len(clients) == 1 {
		return clients[0]
	}
	return NewFallbackClient(log, clients...)
}
