package nutrition

import (
	"strings"

	"github.com/fdg312/fittrack/internal/config"
)

const (
	ModeMock   = "mock"
	ModeGemini = "gemini"
)

func NewProvider(cfg *config.Config) Provider {
	mode := strings.ToLower(strings.TrimSpace(cfg.NutritionMode))
	if mode == "" {
		mode = ModeMock
	}

	switch mode {
	case ModeGemini:
		return NewGeminiProvider(cfg)
	default:
		return NewMockProvider()
	}
}
