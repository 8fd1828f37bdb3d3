package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/microlearn/internal/store"
)

// NewProvider creates a Provider from configuration.
// The returned provider is wrapped with the logging middleware; eventRepo
// may be nil when usage recording is disabled.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Single attempt per call: caller → logging → base.
	return WithLogging(base, cfg.Provider, eventRepo, logger), nil
}

// NewProviderFromEnv resolves configuration from MICROLEARN_* variables,
// falling back to well-known API key variables, and builds the provider.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, logger *zap.Logger) (Provider, Config, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, cfg, fmt.Errorf("no LLM credentials found: set GEMINI_API_KEY (or MICROLEARN_GEMINI_API_KEY): %w", err)
		}
		cfg = discovered
	}

	p, err := NewProvider(ctx, cfg, eventRepo, logger)
	if err != nil {
		return nil, cfg, err
	}
	return p, cfg, nil
}
