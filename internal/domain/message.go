// File: internal/domain/message.go
package domain

import "time"

// Message roles. Every persisted message is one half of a turn.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn's content within a thread. Messages are written once
// and never mutated; they disappear only when their thread is deleted.
// Attachment fields hold metadata only, the raw bytes are never stored.
type Message struct {
	ID             uint      `json:"id" gorm:"primarykey"`
	UserID         uint      `json:"-" gorm:"index;not null"`
	ThreadID       uint      `json:"thread_id" gorm:"index;not null"`
	Role           string    `json:"role" gorm:"not null"` // "user" or "assistant"
	Content        string    `json:"content"`
	AttachmentName string    `json:"attachment_name,omitempty"`
	AttachmentType string    `json:"attachment_type,omitempty"`
	AttachmentSize int64     `json:"attachment_size,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// HasAttachment reports whether attachment metadata was recorded with the message.
func (m *Message) HasAttachment() bool {
	return m.AttachmentName != "" || m.AttachmentType != "" || m.AttachmentSize > 0
}
