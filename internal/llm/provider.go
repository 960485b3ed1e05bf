package llm

import (
	"context"

	"github.com/huimingz/semiauto-go/internal/prompt"
)

// Temperature is the sampling temperature sent with every request
const Temperature = 0

// Completion is the text returned by the service plus its token usage
type Completion struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Completer sends one prompt to a completion service and returns the first
// choice
type Completer interface {
	// Name returns the API mode the completer speaks
	Name() string

	// Complete issues a single blocking request
	Complete(ctx context.Context, p prompt.Prompt) (*Completion, error)
}
