// File: internal/handlers/thread_handler.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sarmadi/go-chathub/internal/domain"
	"github.com/sarmadi/go-chathub/internal/middleware"
	"github.com/sarmadi/go-chathub/internal/services"
	chatservice "github.com/sarmadi/go-chathub/internal/services/chat"
)

type ThreadHandler struct {
	ChatService *services.ChatService
}

func NewThreadHandler(cs *services.ChatService) *ThreadHandler {
	return &ThreadHandler{ChatService: cs}
}

// ListThreads returns every thread for the user, most recently updated
// first. Errors degrade to an empty list so the sidebar always renders.
func (h *ThreadHandler) ListThreads(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{"threads": []domain.Thread{}})
		return
	}

	threads, err := h.ChatService.ListThreads(r.Context(), userID)
	if err != nil {
		log.Printf("List threads error: %v", err)
		threads = []domain.Thread{}
	}
	if threads == nil {
		threads = []domain.Thread{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"threads": threads})
}

// CreateThread inserts a fresh thread with the default title.
func (h *ThreadHandler) CreateThread(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	thread, err := h.ChatService.CreateThread(r.Context(), userID)
	if err != nil {
		log.Printf("Create thread error: %v", err)
		writeError(w, "Failed to create thread", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"thread": thread})
}

// GetThread returns the thread and its messages in creation order.
func (h *ThreadHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	threadID, err := threadIDFromPath(r)
	if err != nil {
		writeError(w, "Invalid thread ID", http.StatusBadRequest)
		return
	}

	thread, messages, err := h.ChatService.GetThreadWithMessages(r.Context(), userID, threadID)
	if err != nil {
		if chatservice.IsType(err, chatservice.ErrTypeUnauthorized) {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"thread": nil,
				"chats":  []messageView{},
			})
			return
		}
		log.Printf("Thread fetch error: %v", err)
		writeError(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"thread": thread,
		"chats":  toMessageViews(messages),
	})
}

// RenameThread updates the thread title under the ownership predicate.
func (h *ThreadHandler) RenameThread(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	threadID, err := threadIDFromPath(r)
	if err != nil {
		writeError(w, "Invalid thread ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	thread, err := h.ChatService.RenameThread(r.Context(), userID, threadID, req.Title)
	if err != nil {
		switch {
		case chatservice.IsType(err, chatservice.ErrTypeValidation):
			writeError(w, "Title is required", http.StatusBadRequest)
		case chatservice.IsType(err, chatservice.ErrTypeUnauthorized):
			writeError(w, "Thread not found", http.StatusNotFound)
		default:
			log.Printf("Rename error: %v", err)
			writeError(w, "Rename failed", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"thread": thread})
}

// DeleteThread removes the thread and its messages. Deleting a missing or
// foreign thread still reports success.
func (h *ThreadHandler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	threadID, err := threadIDFromPath(r)
	if err != nil {
		writeError(w, "Invalid thread ID", http.StatusBadRequest)
		return
	}

	if err := h.ChatService.DeleteThread(r.Context(), userID, threadID); err != nil {
		log.Printf("Delete error: %v", err)
		writeError(w, "Delete failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func threadIDFromPath(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}
