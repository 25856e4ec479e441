package advisor

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"
)

const defaultModel = "gpt-4o-mini"

const systemPrompt = "You are a senior code reviewer. Point out correctness problems, " +
	"risky constructs, and style issues in the code you are given. Be specific and " +
	"concise; reference line content rather than line numbers."

// OpenAIAdvisor reviews code through the OpenAI chat completion API.
type OpenAIAdvisor struct {
	client *openai.Client
	model  string
}

// NewOpenAIAdvisor creates an advisor for the given API key and model.
// An empty model falls back to the default.
func NewOpenAIAdvisor(apiKey, model string) *OpenAIAdvisor {
	if model == "" {
		model = defaultModel
		slog.Warn("advisor model not set, using default", "model", model)
	}
	return &OpenAIAdvisor{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Review implements the Advisor interface.
func (a *OpenAIAdvisor) Review(ctx context.Context, text string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("advisor call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("advisor returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
