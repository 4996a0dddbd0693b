// File: internal/repository/thread/thread_repository.go
package thread

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/sarmadi/go-chathub/internal/domain"
)

var ErrThreadNotFound = errors.New("thread not found")

type gormThreadRepository struct {
	db *gorm.DB
}

func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &gormThreadRepository{db: db}
}

func (r *gormThreadRepository) Create(ctx context.Context, t *domain.Thread) (*domain.Thread, error) {
	if t == nil || t.UserID == 0 {
		return nil, errors.New("invalid thread: user ID is required")
	}
	if t.Title == "" {
		t.Title = domain.DefaultThreadTitle
	}

	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		log.Printf("[ThreadRepository] Database error creating thread for user ID %d: %v", t.UserID, err)
		return nil, errors.New("database error creating thread")
	}
	return t, nil
}

// FindOwned returns the thread only when it exists and belongs to the user.
func (r *gormThreadRepository) FindOwned(ctx context.Context, threadID, userID uint) (*domain.Thread, error) {
	if threadID == 0 || userID == 0 {
		return nil, ErrThreadNotFound
	}

	var t domain.Thread
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", threadID, userID).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThreadNotFound
		}
		log.Printf("[ThreadRepository] Database error finding thread ID %d: %v", threadID, err)
		return nil, errors.New("database error fetching thread")
	}
	return &t, nil
}

func (r *gormThreadRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Thread, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var threads []domain.Thread
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC, id DESC").
		Find(&threads).Error
	if err != nil {
		log.Printf("[ThreadRepository] Database error listing threads for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching threads")
	}
	return threads, nil
}

// UpdateTitle renames the thread under the ownership predicate and returns
// the updated record. Renaming a foreign or missing thread yields ErrThreadNotFound.
func (r *gormThreadRepository) UpdateTitle(ctx context.Context, threadID, userID uint, title string) (*domain.Thread, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Thread{}).
		Where("id = ? AND user_id = ?", threadID, userID).
		Update("title", title)
	if result.Error != nil {
		log.Printf("[ThreadRepository] Database error renaming thread ID %d: %v", threadID, result.Error)
		return nil, errors.New("database error renaming thread")
	}
	if result.RowsAffected == 0 {
		return nil, ErrThreadNotFound
	}
	return r.FindOwned(ctx, threadID, userID)
}

// Delete removes the thread under the ownership predicate. Deleting a
// missing or foreign thread is a silent no-op.
func (r *gormThreadRepository) Delete(ctx context.Context, threadID, userID uint) error {
	if threadID == 0 || userID == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", threadID, userID).
		Delete(&domain.Thread{})
	if result.Error != nil {
		log.Printf("[ThreadRepository] Database error deleting thread ID %d for user ID %d: %v", threadID, userID, result.Error)
		return errors.New("database error deleting thread")
	}
	return nil
}

func (r *gormThreadRepository) TouchUpdatedAt(ctx context.Context, threadID uint) error {
	if threadID == 0 {
		return errors.New("invalid thread ID")
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Thread{}).
		Where("id = ?", threadID).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP"))
	if result.Error != nil {
		log.Printf("[ThreadRepository] Database error updating timestamp for thread ID %d: %v", threadID, result.Error)
		return errors.New("database error updating thread timestamp")
	}
	if result.RowsAffected == 0 {
		return ErrThreadNotFound
	}
	return nil
}
