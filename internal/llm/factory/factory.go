package factory

import (
	"fmt"

	"github.com/newthinker/tradejournal/internal/config"
	"github.com/newthinker/tradejournal/internal/core"
	"github.com/newthinker/tradejournal/internal/llm"
	"github.com/newthinker/tradejournal/internal/llm/claude"
	"github.com/newthinker/tradejournal/internal/llm/openai"
)

// New creates an LLM provider based on configuration.
func New(cfg config.LLMConfig) (llm.Provider, error) {
	switch cfg.Provider {
	case "claude":
		return claude.New(cfg.Claude.APIKey, cfg.Claude.Model, cfg.Claude.BaseURL)
	case "openai":
		return openai.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)
	default:
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unknown LLM provider: %q", cfg.Provider))
	}
}
