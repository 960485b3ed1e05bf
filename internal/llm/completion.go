package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/huimingz/semiauto-go/internal/config"
	"github.com/huimingz/semiauto-go/internal/log"
	"github.com/huimingz/semiauto-go/internal/prompt"
)

// ErrNoChoices is returned when the service answers without any completion
var ErrNoChoices = errors.New("response contained no choices")

// CompletionClient implements Completer against an OpenAI-compatible
// /completions endpoint using the raw rendered prompt
type CompletionClient struct {
	client *openai.Client
	model  string
}

// NewCompletionClient creates a client for cfg's base URL, key and model.
// A nil httpClient uses the default transport with no timeout.
func NewCompletionClient(cfg config.Config, httpClient *http.Client) *CompletionClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.APIBaseURL
	clientCfg.HTTPClient = NewTemperatureClient(httpClient)

	return &CompletionClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

// Name returns the API mode
func (c *CompletionClient) Name() string {
	return config.ModeCompletion
}

// Complete sends the rendered prompt and returns the first choice's text
func (c *CompletionClient) Complete(ctx context.Context, p prompt.Prompt) (*Completion, error) {
	rendered := p.Render()
	log.DebugPrompt("Prompt", rendered)

	req := openai.CompletionRequest{
		Model:       c.model,
		Prompt:      rendered,
		Temperature: Temperature,
	}

	resp, err := c.client.CreateCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}

	return &Completion{
		Text:             resp.Choices[0].Text,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}, nil
}
