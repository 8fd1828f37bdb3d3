package lessons

import (
	"fmt"
	"os"
	"time"
)

// Config holds lesson generation settings.
type Config struct {
	// Temperature for the synthesis call. Kept low so lessons favor
	// consistency over creativity.
	Temperature float64

	// ResearchMaxTokens caps the research answer. Zero means provider default.
	ResearchMaxTokens int

	// SynthesisMaxTokens caps the lesson JSON.
	SynthesisMaxTokens int

	// ResearchTimeout bounds the grounded search call. Expiry degrades
	// research rather than failing the request.
	ResearchTimeout time.Duration

	// SynthesisTimeout bounds the lesson call. Expiry is fatal.
	SynthesisTimeout time.Duration
}

// DefaultConfig returns sensible defaults for lesson generation.
func DefaultConfig() Config {
	return Config{
		Temperature:        0.3,
		SynthesisMaxTokens: 16384,
		ResearchTimeout:    45 * time.Second,
		SynthesisTimeout:   90 * time.Second,
	}
}

// ConfigFromEnv applies MICROLEARN_RESEARCH_TIMEOUT and
// MICROLEARN_SYNTHESIS_TIMEOUT (Go duration syntax) over the defaults.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	for _, o := range []struct {
		env string
		dst *time.Duration
	}{
		{"MICROLEARN_RESEARCH_TIMEOUT", &cfg.ResearchTimeout},
		{"MICROLEARN_SYNTHESIS_TIMEOUT", &cfg.SynthesisTimeout},
	} {
		v := os.Getenv(o.env)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("%s: invalid duration %q", o.env, v)
		}
		*o.dst = d
	}

	return cfg, nil
}
