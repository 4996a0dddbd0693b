// File: internal/repository/message/interface.go
package message

import (
	"context"

	"github.com/sarmadi/go-chathub/internal/domain"
)

// MessageRepository handles message data operations.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
	FindByThreadID(ctx context.Context, threadID, userID uint) ([]domain.Message, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Message, error)
	DeleteByThreadID(ctx context.Context, threadID, userID uint) error
	CountByThreadID(ctx context.Context, threadID uint) (int64, error)
}
