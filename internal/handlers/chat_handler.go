// File: internal/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/sarmadi/go-chathub/internal/domain"
	"github.com/sarmadi/go-chathub/internal/middleware"
	"github.com/sarmadi/go-chathub/internal/services"
	chatservice "github.com/sarmadi/go-chathub/internal/services/chat"
)

type ChatHandler struct {
	ChatService *services.ChatService
}

func NewChatHandler(cs *services.ChatService) *ChatHandler {
	return &ChatHandler{ChatService: cs}
}

type turnRequest struct {
	ThreadID   uint                    `json:"threadId"`
	Message    string                  `json:"message"`
	Attachment *chatservice.Attachment `json:"attachment"`
}

// HandleChatMessage runs one persistent chat turn: validate, store the
// user message, call the generation API, store the reply.
func (h *ChatHandler) HandleChatMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ThreadID == 0 {
		writeError(w, "Thread ID is required", http.StatusBadRequest)
		return
	}

	reply, err := h.ChatService.SendMessage(r.Context(), userID, chatservice.TurnInput{
		ThreadID:   req.ThreadID,
		Message:    req.Message,
		Attachment: req.Attachment,
	})
	if err != nil {
		h.writeTurnError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// HandleTemporaryChatMessage runs the identical turn without persisting
// anything.
func (h *ChatHandler) HandleTemporaryChatMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	reply, err := h.ChatService.SendTemporaryMessage(r.Context(), userID, chatservice.TurnInput{
		Message:    req.Message,
		Attachment: req.Attachment,
	})
	if err != nil {
		h.writeTurnError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// GetHistory returns every message the user owns, oldest first. Errors
// degrade to an empty list.
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{"chats": []domain.Message{}})
		return
	}

	messages, err := h.ChatService.History(r.Context(), userID)
	if err != nil {
		log.Printf("History error: %v", err)
		messages = []domain.Message{}
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"chats": messages})
}

func (h *ChatHandler) writeTurnError(w http.ResponseWriter, err error) {
	switch {
	case chatservice.IsType(err, chatservice.ErrTypeValidation):
		writeError(w, "Message is required", http.StatusBadRequest)
	case chatservice.IsType(err, chatservice.ErrTypePayloadSize):
		writeError(w, "Attachments must be 5.0 MB or smaller.", http.StatusRequestEntityTooLarge)
	case chatservice.IsType(err, chatservice.ErrTypeUnauthorized):
		writeError(w, "Invalid thread", http.StatusBadRequest)
	default:
		log.Printf("Chat turn error: %v", err)
		writeError(w, "Something went wrong", http.StatusInternalServerError)
	}
}
