// File: internal/services/chat/types.go
package chat

// Logger defines the logging interface used across chat services.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Attachment is the wire shape of an uploaded file. Data holds the
// base64-encoded bytes; it is forwarded to the generation call and then
// discarded, only the metadata is ever persisted.
type Attachment struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	Data string `json:"data,omitempty"`
}

// HasData reports whether the attachment carries actual bytes rather than
// metadata alone.
func (a *Attachment) HasData() bool {
	return a != nil && a.Data != ""
}

// TurnInput is everything a single message turn needs from the caller.
// ThreadID is zero for temporary chats.
type TurnInput struct {
	ThreadID   uint
	Message    string
	Attachment *Attachment
}
