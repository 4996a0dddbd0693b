// File: internal/services/gemini/interface.go
package gemini

import "context"

// Part is one element of a generation request: either literal text or
// inlined base64 bytes with their MIME type.
type Part struct {
	Text       string
	InlineData *InlineData
}

// InlineData carries base64-encoded attachment bytes into the request.
type InlineData struct {
	MIMEType string
	Data     string
}

func TextPart(text string) Part {
	return Part{Text: text}
}

func InlinePart(mimeType, data string) Part {
	return Part{InlineData: &InlineData{MIMEType: mimeType, Data: data}}
}

// Provider is a single-shot generation backend: it sends the assembled
// parts and returns one text reply. An empty reply with a nil error means
// the backend answered but produced no usable text.
type Provider interface {
	GenerateContent(ctx context.Context, parts []Part) (string, error)
}
