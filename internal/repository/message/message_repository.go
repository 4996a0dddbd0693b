// File: internal/repository/message/message_repository.go
package message

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/sarmadi/go-chathub/internal/domain"
)

var ErrMessageNotFound = errors.New("message not found")

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

func (r *gormMessageRepository) Create(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	if err := validateMessageInput(m); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		// Secure logging - message content is never written to the log.
		log.Printf("[MessageRepository] Database error creating message for thread ID %d: %v", m.ThreadID, err)
		return nil, errors.New("database error creating message")
	}
	return m, nil
}

// FindByThreadID returns the thread's messages in creation order.
func (r *gormMessageRepository) FindByThreadID(ctx context.Context, threadID, userID uint) ([]domain.Message, error) {
	if threadID == 0 || userID == 0 {
		return nil, errors.New("invalid thread ID or user ID")
	}

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("thread_id = ? AND user_id = ?", threadID, userID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error fetching messages for thread ID %d: %v", threadID, err)
		return nil, errors.New("database error fetching messages")
	}
	return messages, nil
}

// FindByUserID returns every message the user owns, oldest first.
func (r *gormMessageRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Message, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error fetching history for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching history")
	}
	return messages, nil
}

// DeleteByThreadID removes every message of the thread. Zero rows affected
// is not an error; thread deletion must stay idempotent.
func (r *gormMessageRepository) DeleteByThreadID(ctx context.Context, threadID, userID uint) error {
	if threadID == 0 || userID == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Where("thread_id = ? AND user_id = ?", threadID, userID).
		Delete(&domain.Message{})
	if result.Error != nil {
		log.Printf("[MessageRepository] Database error deleting messages for thread ID %d: %v", threadID, result.Error)
		return errors.New("database error deleting messages")
	}
	return nil
}

func (r *gormMessageRepository) CountByThreadID(ctx context.Context, threadID uint) (int64, error) {
	if threadID == 0 {
		return 0, errors.New("invalid thread ID")
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("thread_id = ?", threadID).
		Count(&count).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error counting messages for thread ID %d: %v", threadID, err)
		return 0, errors.New("database error counting messages")
	}
	return count, nil
}

func validateMessageInput(m *domain.Message) error {
	if m == nil {
		return errors.New("message cannot be nil")
	}
	if m.UserID == 0 || m.ThreadID == 0 {
		return errors.New("message requires a user ID and thread ID")
	}
	if m.Role != domain.RoleUser && m.Role != domain.RoleAssistant {
		return errors.New("message role must be user or assistant")
	}
	return nil
}
