package agent

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

const assistantSystemPrompt = "You are a sourcing assistant for the Snowcore " +
	"parts-intelligence warehouse. Answer questions about parts, suppliers, " +
	"inventory, compliance, procurement, and consolidation scenarios. Be " +
	"concise and quantitative where the data allows."

// OpenAIClient answers assistant questions through the OpenAI chat API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates an OpenAI-backed assistant client.
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, &SemanticError{Message: "OpenAI API key is required"}
	}
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  "gpt-4o",
	}, nil
}

// Provider returns the backend name.
func (c *OpenAIClient) Provider() string {
	return "openai"
}

// Ask sends one question as a single chat completion.
func (c *OpenAIClient) Ask(ctx context.Context, question, contextTag string) (*Exchange, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: assistantSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userContent(question, contextTag)},
		},
		MaxTokens: 1024,
	})
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if len(resp.Choices) == 0 {
		return nil, &SemanticError{Message: "assistant returned no choices"}
	}

	return &Exchange{
		Question: question,
		Response: resp.Choices[0].Message.Content,
	}, nil
}
