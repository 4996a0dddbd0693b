// File: internal/services/gemini/openai_provider.go
package gemini

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider drives any OpenAI-compatible chat-completion endpoint
// through the same Provider interface. Text parts are concatenated into
// the prompt; inlined images travel as data URLs, other inlined content
// degrades to a note since chat completions cannot carry arbitrary bytes.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAIProvider(apiKey, baseURL, model string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (p *OpenAIProvider) GenerateContent(ctx context.Context, parts []Part) (string, error) {
	content := make([]openai.ChatMessagePart, 0, len(parts))
	for _, part := range parts {
		if part.Text != "" {
			content = append(content, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: part.Text,
			})
		}
		if part.InlineData == nil {
			continue
		}
		if strings.HasPrefix(part.InlineData.MIMEType, "image/") {
			content = append(content, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: fmt.Sprintf("data:%s;base64,%s", part.InlineData.MIMEType, part.InlineData.Data),
				},
			})
			continue
		}
		content = append(content, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeText,
			Text: fmt.Sprintf("An attachment of type %q was provided but cannot be inlined here.", part.InlineData.MIMEType),
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:         openai.ChatMessageRoleUser,
			MultiContent: content,
		}},
	})
	if err != nil {
		return "", &GenerationError{Type: ErrTypeProvider, Message: "chat completion failed", Cause: err}
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
