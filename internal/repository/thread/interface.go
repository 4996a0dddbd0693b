// File: internal/repository/thread/interface.go
package thread

import (
	"context"

	"github.com/sarmadi/go-chathub/internal/domain"
)

// ThreadRepository handles thread data operations. Every method that reads
// or writes an existing thread takes the owning user ID and applies the
// ownership predicate in the query itself; a thread owned by someone else
// is indistinguishable from a missing one.
type ThreadRepository interface {
	Create(ctx context.Context, t *domain.Thread) (*domain.Thread, error)
	FindOwned(ctx context.Context, threadID, userID uint) (*domain.Thread, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Thread, error)
	UpdateTitle(ctx context.Context, threadID, userID uint, title string) (*domain.Thread, error)
	Delete(ctx context.Context, threadID, userID uint) error
	TouchUpdatedAt(ctx context.Context, threadID uint) error
}
