// File: internal/services/gemini/gemini_provider.go
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// GeminiProvider calls the generativelanguage generateContent endpoint.
// One request per turn, no retries; a hung request is bounded only by the
// configured client timeout and the request context.
type GeminiProvider struct {
	config *Config
	client *http.Client
}

func NewGeminiProvider(config *Config) *GeminiProvider {
	return &GeminiProvider{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

type generateRequest struct {
	Contents []requestContent `json:"contents"`
}

type requestContent struct {
	Role  string        `json:"role"`
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text       string             `json:"text,omitempty"`
	InlineData *requestInlineData `json:"inline_data,omitempty"`
}

type requestInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (p *GeminiProvider) GenerateContent(ctx context.Context, parts []Part) (string, error) {
	payload := generateRequest{
		Contents: []requestContent{{Role: "user", Parts: toRequestParts(parts)}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &GenerationError{Type: ErrTypeProvider, Message: "invalid request payload", Cause: err}
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		p.config.BaseURL, p.config.Model, p.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", &GenerationError{Type: ErrTypeNetwork, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &GenerationError{Type: ErrTypeNetwork, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", p.statusError(resp)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &GenerationError{Type: ErrTypeProvider, Message: "unreadable response", Cause: err}
	}

	// First text part of the first candidate; empty when the model
	// produced nothing usable.
	if len(decoded.Candidates) > 0 && len(decoded.Candidates[0].Content.Parts) > 0 {
		return decoded.Candidates[0].Content.Parts[0].Text, nil
	}
	return "", nil
}

func (p *GeminiProvider) statusError(resp *http.Response) error {
	responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode == http.StatusTooManyRequests {
		return &GenerationError{
			Type:    ErrTypeRateLimit,
			Code:    resp.StatusCode,
			Message: "rate limit exceeded",
		}
	}
	return &GenerationError{
		Type:    ErrTypeProvider,
		Code:    resp.StatusCode,
		Message: string(responseBody),
	}
}

func toRequestParts(parts []Part) []requestPart {
	out := make([]requestPart, 0, len(parts))
	for _, part := range parts {
		rp := requestPart{Text: part.Text}
		if part.InlineData != nil {
			rp.InlineData = &requestInlineData{
				MIMEType: part.InlineData.MIMEType,
				Data:     part.InlineData.Data,
			}
		}
		out = append(out, rp)
	}
	return out
}
