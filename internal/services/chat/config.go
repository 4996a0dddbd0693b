// File: internal/services/chat/config.go
package chat

import "fmt"

type Config struct {
	// Attachment ceiling, applied to the approximate decoded size before
	// any persistence or outbound call.
	MaxAttachmentBytes int64

	// Auto-title length cap for the first user message of a thread.
	TitleMaxLength int

	// Replies substituted when the provider answers without usable text.
	FallbackReply          string
	TemporaryFallbackReply string
}

func (c *Config) Validate() error {
	if c.MaxAttachmentBytes <= 0 {
		return fmt.Errorf("max_attachment_bytes must be positive")
	}
	if c.TitleMaxLength <= 0 {
		return fmt.Errorf("title_max_length must be positive")
	}
	if c.FallbackReply == "" || c.TemporaryFallbackReply == "" {
		return fmt.Errorf("fallback replies are required")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		MaxAttachmentBytes:     5 * 1024 * 1024,
		TitleMaxLength:         50,
		FallbackReply:          "No response from Gemini 2.0.",
		TemporaryFallbackReply: "I wasn't able to draft a response.",
	}
}
