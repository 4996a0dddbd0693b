// File: internal/repository/message/message_repository_test.go
package message

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/sarmadi/go-chathub/internal/domain"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.Message{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedTurn(t *testing.T, repo MessageRepository, userID, threadID uint, text string) {
	t.Helper()
	pairs := []struct {
		role    string
		content string
	}{
		{domain.RoleUser, text},
		{domain.RoleAssistant, "reply to " + text},
	}
	for _, p := range pairs {
		if _, err := repo.Create(context.Background(), &domain.Message{
			UserID:   userID,
			ThreadID: threadID,
			Role:     p.role,
			Content:  p.content,
		}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	repo := NewMessageRepository(openTestDB(t))

	cases := []struct {
		name string
		msg  *domain.Message
	}{
		{"nil message", nil},
		{"missing user", &domain.Message{ThreadID: 1, Role: domain.RoleUser}},
		{"missing thread", &domain.Message{UserID: 1, Role: domain.RoleUser}},
		{"bad role", &domain.Message{UserID: 1, ThreadID: 1, Role: "system"}},
	}
	for _, c := range cases {
		if _, err := repo.Create(context.Background(), c.msg); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}

func TestFindByThreadID_ScopedToOwner(t *testing.T) {
	repo := NewMessageRepository(openTestDB(t))
	seedTurn(t, repo, 1, 7, "hello")

	messages, err := repo.FindByThreadID(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Role != domain.RoleUser || messages[1].Role != domain.RoleAssistant {
		t.Errorf("messages out of creation order: %+v", messages)
	}

	foreign, err := repo.FindByThreadID(context.Background(), 7, 2)
	if err != nil {
		t.Fatalf("foreign fetch failed: %v", err)
	}
	if len(foreign) != 0 {
		t.Errorf("foreign user must see no messages, got %d", len(foreign))
	}
}

func TestDeleteByThreadID_IdempotentAndCounted(t *testing.T) {
	repo := NewMessageRepository(openTestDB(t))
	seedTurn(t, repo, 1, 7, "hello")
	seedTurn(t, repo, 1, 8, "other thread")

	count, err := repo.CountByThreadID(context.Background(), 7)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 messages before delete, got %d", count)
	}

	if err := repo.DeleteByThreadID(context.Background(), 7, 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := repo.DeleteByThreadID(context.Background(), 7, 1); err != nil {
		t.Errorf("repeat delete must be a no-op, got %v", err)
	}

	count, err = repo.CountByThreadID(context.Background(), 7)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 messages after delete, got %d", count)
	}

	count, err = repo.CountByThreadID(context.Background(), 8)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("other threads must be untouched, got %d", count)
	}
}
