package llm

import (
	"context"
	"fmt"

	"github.com/huimingz/semiauto-go/internal/config"
)

// CompleterFactory creates a Completer for the configured API mode
type CompleterFactory struct{}

// NewCompleterFactory creates a new CompleterFactory
func NewCompleterFactory() *CompleterFactory {
	return &CompleterFactory{}
}

// Create returns the Completer matching cfg.APIMode
func (f *CompleterFactory) Create(ctx context.Context, cfg config.Config) (Completer, error) {
	switch cfg.APIMode {
	case config.ModeCompletion, "":
		return NewCompletionClient(cfg, nil), nil
	case config.ModeChat:
		return NewChatClient(ctx, cfg, nil)
	default:
		return nil, fmt.Errorf("unsupported api mode: %s", cfg.APIMode)
	}
}
