// File: internal/domain/thread.go
package domain

import "time"

// DefaultThreadTitle is the title every thread starts with. The first user
// message replaces it; a thread that still carries it has never been titled.
const DefaultThreadTitle = "New Chat"

// Thread represents a single named conversation owned by one user.
type Thread struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"-" gorm:"index;not null"`
	Title     string    `json:"title" gorm:"not null;default:'New Chat'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
