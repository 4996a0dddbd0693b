// File: internal/services/chat_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sarmadi/go-chathub/internal/domain"
	"github.com/sarmadi/go-chathub/internal/repository/message"
	"github.com/sarmadi/go-chathub/internal/repository/thread"
	chatservice "github.com/sarmadi/go-chathub/internal/services/chat"
	"github.com/sarmadi/go-chathub/internal/services/gemini"
)

// ChatService owns the thread lifecycle and the message turn: validate,
// persist the user's half, assemble the generation request, call the
// provider once, persist the assistant's half. Temporary turns run the
// same pipeline with every persistence step skipped.
type ChatService struct {
	config      *chatservice.Config
	threadRepo  thread.ThreadRepository
	messageRepo message.MessageRepository
	provider    gemini.Provider
	logger      Logger
}

func NewChatService(
	threadRepo thread.ThreadRepository,
	messageRepo message.MessageRepository,
	provider gemini.Provider,
	logger Logger,
) (*ChatService, error) {
	if threadRepo == nil {
		return nil, chatservice.NewValidationError("constructor", "thread repository is required")
	}
	if messageRepo == nil {
		return nil, chatservice.NewValidationError("constructor", "message repository is required")
	}
	if provider == nil {
		return nil, chatservice.NewValidationError("constructor", "generation provider is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}

	config := chatservice.DefaultConfig()
	if err := config.Validate(); err != nil {
		return nil, chatservice.NewValidationError("config", err.Error())
	}

	return &ChatService{
		config:      config,
		threadRepo:  threadRepo,
		messageRepo: messageRepo,
		provider:    provider,
		logger:      logger,
	}, nil
}

// --- thread operations ---

func (s *ChatService) CreateThread(ctx context.Context, userID uint) (*domain.Thread, error) {
	t := &domain.Thread{UserID: userID, Title: domain.DefaultThreadTitle}
	created, err := s.threadRepo.Create(ctx, t)
	if err != nil {
		return nil, chatservice.NewStorageError("create_thread", "could not create thread", err)
	}
	s.logger.Info("thread created", "thread_id", created.ID, "user_id", userID)
	return created, nil
}

func (s *ChatService) ListThreads(ctx context.Context, userID uint) ([]domain.Thread, error) {
	return s.threadRepo.FindByUserID(ctx, userID)
}

func (s *ChatService) GetThreadWithMessages(ctx context.Context, userID, threadID uint) (*domain.Thread, []domain.Message, error) {
	t, err := s.threadRepo.FindOwned(ctx, threadID, userID)
	if err != nil {
		if errors.Is(err, thread.ErrThreadNotFound) {
			return nil, nil, chatservice.NewUnauthorizedError(userID, threadID)
		}
		return nil, nil, chatservice.NewStorageError("get_thread", "could not fetch thread", err)
	}

	messages, err := s.messageRepo.FindByThreadID(ctx, threadID, userID)
	if err != nil {
		return nil, nil, chatservice.NewStorageError("get_thread", "could not fetch messages", err)
	}
	return t, messages, nil
}

func (s *ChatService) RenameThread(ctx context.Context, userID, threadID uint, title string) (*domain.Thread, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, chatservice.NewValidationError("rename_thread", "title cannot be empty")
	}

	updated, err := s.threadRepo.UpdateTitle(ctx, threadID, userID, title)
	if err != nil {
		if errors.Is(err, thread.ErrThreadNotFound) {
			return nil, chatservice.NewUnauthorizedError(userID, threadID)
		}
		return nil, chatservice.NewStorageError("rename_thread", "could not rename thread", err)
	}
	return updated, nil
}

// DeleteThread removes the thread and every message in it. Deleting a
// missing or foreign thread succeeds silently.
func (s *ChatService) DeleteThread(ctx context.Context, userID, threadID uint) error {
	if err := s.messageRepo.DeleteByThreadID(ctx, threadID, userID); err != nil {
		return chatservice.NewStorageError("delete_thread", "could not delete messages", err)
	}
	if err := s.threadRepo.Delete(ctx, threadID, userID); err != nil {
		return chatservice.NewStorageError("delete_thread", "could not delete thread", err)
	}
	s.logger.Info("thread deleted", "thread_id", threadID, "user_id", userID)
	return nil
}

// History returns every message the user owns, oldest first.
func (s *ChatService) History(ctx context.Context, userID uint) ([]domain.Message, error) {
	return s.messageRepo.FindByUserID(ctx, userID)
}

// --- message turns ---

// SendMessage runs one persistent chat turn and returns the assistant reply.
func (s *ChatService) SendMessage(ctx context.Context, userID uint, input chatservice.TurnInput) (string, error) {
	if err := s.validateTurn(input, true); err != nil {
		return "", err
	}

	t, err := s.threadRepo.FindOwned(ctx, input.ThreadID, userID)
	if err != nil {
		if errors.Is(err, thread.ErrThreadNotFound) {
			return "", chatservice.NewUnauthorizedError(userID, input.ThreadID)
		}
		return "", chatservice.NewStorageError("send_message", "could not fetch thread", err)
	}

	userMsg := &domain.Message{
		UserID:   userID,
		ThreadID: t.ID,
		Role:     domain.RoleUser,
		Content:  input.Message,
	}
	if att := input.Attachment; att != nil {
		userMsg.AttachmentName = att.Name
		userMsg.AttachmentType = att.Type
		userMsg.AttachmentSize = att.Size
	}
	if _, err := s.messageRepo.Create(ctx, userMsg); err != nil {
		return "", chatservice.NewStorageError("send_message", "could not save user message", err)
	}

	// Auto-title on the first real message while the default title is
	// still in place. Subsequent messages never rename the thread.
	if trimmed := strings.TrimSpace(input.Message); t.Title == domain.DefaultThreadTitle && trimmed != "" {
		if _, err := s.threadRepo.UpdateTitle(ctx, t.ID, userID, truncateRunes(trimmed, s.config.TitleMaxLength)); err != nil {
			s.logger.Warn("auto-title failed", "thread_id", t.ID, "error", err)
		}
	}

	reply, err := s.generate(ctx, input)
	if err != nil {
		return "", err
	}
	if reply == "" {
		reply = s.config.FallbackReply
	}

	assistantMsg := &domain.Message{
		UserID:   userID,
		ThreadID: t.ID,
		Role:     domain.RoleAssistant,
		Content:  reply,
	}
	if _, err := s.messageRepo.Create(ctx, assistantMsg); err != nil {
		// The user message stays behind with no matching reply; there is
		// no compensation for the half-written turn.
		return "", chatservice.NewStorageError("send_message", "could not save assistant message", err)
	}

	if err := s.threadRepo.TouchUpdatedAt(ctx, t.ID); err != nil {
		s.logger.Warn("thread timestamp update failed", "thread_id", t.ID, "error", err)
	}
	return reply, nil
}

// SendTemporaryMessage runs one ephemeral turn: identical validation and
// generation, nothing persisted regardless of outcome.
func (s *ChatService) SendTemporaryMessage(ctx context.Context, userID uint, input chatservice.TurnInput) (string, error) {
	if err := s.validateTurn(input, false); err != nil {
		return "", err
	}

	reply, err := s.generate(ctx, input)
	if err != nil {
		return "", err
	}
	if reply == "" {
		reply = s.config.TemporaryFallbackReply
	}
	return reply, nil
}

func (s *ChatService) generate(ctx context.Context, input chatservice.TurnInput) (string, error) {
	parts := chatservice.BuildParts(input.Message, input.Attachment)
	reply, err := s.provider.GenerateContent(ctx, parts)
	if err != nil {
		s.logger.Error("generation call failed", "error", err)
		return "", chatservice.NewGenerationError("generate", "generation request failed", err)
	}
	return reply, nil
}

func (s *ChatService) validateTurn(input chatservice.TurnInput, requireThread bool) error {
	if requireThread && input.ThreadID == 0 {
		return chatservice.NewValidationError("send_message", "thread ID is required")
	}
	if strings.TrimSpace(input.Message) == "" && input.Attachment == nil {
		return chatservice.NewValidationError("send_message", "message is required")
	}
	if input.Attachment.HasData() {
		if approx := chatservice.ApproxDecodedSize(input.Attachment.Data); approx > s.config.MaxAttachmentBytes {
			return chatservice.NewPayloadSizeError("send_message",
				"attachments must be "+chatservice.FormatFileSize(s.config.MaxAttachmentBytes)+" or smaller")
		}
	}
	return nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
