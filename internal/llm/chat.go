package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/huimingz/semiauto-go/internal/config"
	"github.com/huimingz/semiauto-go/internal/log"
	"github.com/huimingz/semiauto-go/internal/prompt"
)

// ChatClient implements Completer against an OpenAI-compatible
// /chat/completions endpoint. The server applies its own chat template, so the
// role segments are sent as messages instead of header tokens.
type ChatClient struct {
	chatModel model.ChatModel
}

// NewChatClient creates an Eino ChatModel for cfg. A nil httpClient uses the
// default transport with no timeout.
func NewChatClient(ctx context.Context, cfg config.Config, httpClient *http.Client) (*ChatClient, error) {
	temperature := float32(Temperature)
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.APIBaseURL,
		Model:       cfg.Model,
		Temperature: &temperature,
		HTTPClient:  NewTemperatureClient(httpClient),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return &ChatClient{chatModel: chatModel}, nil
}

// Name returns the API mode
func (c *ChatClient) Name() string {
	return config.ModeChat
}

// Messages converts the prompt into chat messages
func Messages(p prompt.Prompt) []*schema.Message {
	return []*schema.Message{
		{
			Role:    schema.System,
			Content: p.System,
		},
		{
			Role:    schema.User,
			Content: p.Diff,
		},
	}
}

// Complete sends the system and user messages and returns the reply
func (c *ChatClient) Complete(ctx context.Context, p prompt.Prompt) (*Completion, error) {
	msgs := Messages(p)
	for _, msg := range msgs {
		log.DebugPrompt(string(msg.Role)+" message", msg.Content)
	}

	resp, err := c.chatModel.Generate(ctx, msgs)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if resp == nil {
		return nil, ErrNoChoices
	}

	completion := &Completion{Text: resp.Content}
	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		usage := resp.ResponseMeta.Usage
		completion.PromptTokens = usage.PromptTokens
		completion.CompletionTokens = usage.CompletionTokens
		completion.TotalTokens = usage.TotalTokens
	}
	return completion, nil
}
