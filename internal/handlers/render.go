// File: internal/handlers/render.go
package handlers

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/sarmadi/go-chathub/internal/domain"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// messageView is the wire shape of a message. Assistant replies arrive as
// markdown, so the chat surface also gets a rendered HTML copy.
type messageView struct {
	domain.Message
	ContentHTML string `json:"content_html,omitempty"`
}

func toMessageViews(messages []domain.Message) []messageView {
	views := make([]messageView, 0, len(messages))
	for _, m := range messages {
		view := messageView{Message: m}
		if m.Role == domain.RoleAssistant {
			view.ContentHTML = renderMarkdown(m.Content)
		}
		views = append(views, view)
	}
	return views
}

func renderMarkdown(src string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return ""
	}
	return buf.String()
}
