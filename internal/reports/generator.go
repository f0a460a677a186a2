// Package reports builds generation prompts from process records,
// calls the external text-generation model and stores the returned
// documents on the record.
package reports

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/prozessdok/prozessdok-backend/pkg/config"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
)

// TextGenerator produces a text document from a prompt. The returned
// text is stored verbatim, never parsed.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// OpenAIGenerator calls the chat completion API.
type OpenAIGenerator struct {
	client *openai.Client
	model  openai.ChatModel
}

// NewOpenAIGenerator creates a generator from the LLM configuration.
func NewOpenAIGenerator(cfg *config.LLMConfig) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:  openai.ChatModel(cfg.Model),
	}
}

// Generate sends the prompt and returns the raw completion text.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		}),
		Model: openai.F(g.model),
	})
	if err != nil {
		return "", errors.GenerationFailed(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.GenerationFailed(errors.ErrInternal)
	}

	return resp.Choices[0].Message.Content, nil
}
