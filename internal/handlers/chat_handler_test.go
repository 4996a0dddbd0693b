// File: internal/handlers/chat_handler_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sarmadi/go-chathub/internal/domain"
	"github.com/sarmadi/go-chathub/internal/middleware"
	"github.com/sarmadi/go-chathub/internal/repository/message"
	"github.com/sarmadi/go-chathub/internal/repository/thread"
	"github.com/sarmadi/go-chathub/internal/services"
	chatservice "github.com/sarmadi/go-chathub/internal/services/chat"
	"github.com/sarmadi/go-chathub/internal/services/gemini"
)

type fakeProvider struct {
	reply string
	err   error
}

func (p *fakeProvider) GenerateContent(ctx context.Context, parts []gemini.Part) (string, error) {
	return p.reply, p.err
}

type testEnv struct {
	router   *mux.Router
	db       *gorm.DB
	svc      *services.ChatService
	provider *fakeProvider
}

// newTestEnv wires the handlers onto an in-memory database behind the same
// routes main registers, with the auth middleware replaced by a stub that
// injects the given user ID. A zero user ID leaves requests unauthenticated.
func newTestEnv(t *testing.T, userID uint) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Thread{}, &domain.Message{}))

	provider := &fakeProvider{reply: "stub reply"}
	svc, err := services.NewChatService(
		thread.NewThreadRepository(db),
		message.NewMessageRepository(db),
		provider,
		&services.NoOpLogger{},
	)
	require.NoError(t, err)

	threadHandler := NewThreadHandler(svc)
	chatHandler := NewChatHandler(svc)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	if userID != 0 {
		api.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
				next.ServeHTTP(w, req.WithContext(ctx))
			})
		})
	}
	api.HandleFunc("/threads", threadHandler.ListThreads).Methods("GET")
	api.HandleFunc("/threads/new", threadHandler.CreateThread).Methods("POST")
	api.HandleFunc("/threads/{id:[0-9]+}", threadHandler.GetThread).Methods("GET")
	api.HandleFunc("/threads/{id:[0-9]+}/rename", threadHandler.RenameThread).Methods("PATCH")
	api.HandleFunc("/threads/{id:[0-9]+}/delete", threadHandler.DeleteThread).Methods("DELETE")
	api.HandleFunc("/chat", chatHandler.HandleChatMessage).Methods("POST")
	api.HandleFunc("/chat/temporary", chatHandler.HandleTemporaryChatMessage).Methods("POST")
	api.HandleFunc("/history", chatHandler.GetHistory).Methods("GET")

	return &testEnv{router: r, db: db, svc: svc, provider: provider}
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) createThread(t *testing.T, userID uint) *domain.Thread {
	t.Helper()
	th, err := env.svc.CreateThread(context.Background(), userID)
	require.NoError(t, err)
	return th
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestChatEndpoint_Success(t *testing.T) {
	env := newTestEnv(t, 1)
	th := env.createThread(t, 1)

	rec := env.do(t, "POST", "/api/chat", map[string]interface{}{
		"threadId": th.ID,
		"message":  "hello",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "stub reply", decodeBody(t, rec)["reply"])
}

func TestChatEndpoint_MissingThreadID(t *testing.T) {
	env := newTestEnv(t, 1)

	rec := env.do(t, "POST", "/api/chat", map[string]interface{}{
		"message": "hello",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Thread ID is required", decodeBody(t, rec)["error"])
}

func TestChatEndpoint_MissingMessage(t *testing.T) {
	env := newTestEnv(t, 1)
	th := env.createThread(t, 1)

	rec := env.do(t, "POST", "/api/chat", map[string]interface{}{
		"threadId": th.ID,
		"message":  "   ",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Message is required", decodeBody(t, rec)["error"])
}

func TestChatEndpoint_OversizedAttachment(t *testing.T) {
	env := newTestEnv(t, 1)
	th := env.createThread(t, 1)

	oversized := make([]byte, (5*1024*1024/3+1)*4)
	for i := range oversized {
		oversized[i] = 'A'
	}
	rec := env.do(t, "POST", "/api/chat", map[string]interface{}{
		"threadId": th.ID,
		"message":  "look",
		"attachment": chatservice.Attachment{
			Name: "big.bin",
			Type: "application/octet-stream",
			Size: 6 * 1024 * 1024,
			Data: string(oversized),
		},
	})

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "Attachments must be 5.0 MB or smaller.", decodeBody(t, rec)["error"])
}

func TestChatEndpoint_ForeignThread(t *testing.T) {
	env := newTestEnv(t, 2)
	th := env.createThread(t, 1)

	rec := env.do(t, "POST", "/api/chat", map[string]interface{}{
		"threadId": th.ID,
		"message":  "hello",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid thread", decodeBody(t, rec)["error"])
}

func TestChatEndpoint_Unauthenticated(t *testing.T) {
	env := newTestEnv(t, 0)

	rec := env.do(t, "POST", "/api/chat", map[string]interface{}{
		"threadId": 1,
		"message":  "hello",
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTemporaryChatEndpoint_WritesNothing(t *testing.T) {
	env := newTestEnv(t, 1)

	rec := env.do(t, "POST", "/api/chat/temporary", map[string]interface{}{
		"message": "hello",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "stub reply", decodeBody(t, rec)["reply"])

	var count int64
	require.NoError(t, env.db.Model(&domain.Message{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetThread_NotFoundShape(t *testing.T) {
	env := newTestEnv(t, 1)

	rec := env.do(t, "GET", "/api/threads/9999", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Nil(t, body["thread"])
	assert.Equal(t, []interface{}{}, body["chats"])
}

func TestGetThread_RendersAssistantMarkdown(t *testing.T) {
	env := newTestEnv(t, 1)
	th := env.createThread(t, 1)
	env.provider.reply = "**bold** answer"

	rec := env.do(t, "POST", "/api/chat", map[string]interface{}{
		"threadId": th.ID,
		"message":  "hello",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, "GET", fmt.Sprintf("/api/threads/%d", th.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	chats, ok := body["chats"].([]interface{})
	require.True(t, ok)
	require.Len(t, chats, 2)

	userMsg := chats[0].(map[string]interface{})
	assert.NotContains(t, userMsg, "content_html")

	assistantMsg := chats[1].(map[string]interface{})
	assert.Contains(t, assistantMsg["content_html"], "<strong>bold</strong>")
}

func TestRenameThreadEndpoint(t *testing.T) {
	env := newTestEnv(t, 1)
	th := env.createThread(t, 1)

	rec := env.do(t, "PATCH", fmt.Sprintf("/api/threads/%d/rename", th.ID), map[string]string{
		"title": "Renamed",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, "PATCH", fmt.Sprintf("/api/threads/%d/rename", th.ID), map[string]string{
		"title": "   ",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Title is required", decodeBody(t, rec)["error"])

	rec = env.do(t, "PATCH", "/api/threads/9999/rename", map[string]string{
		"title": "Missing",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Thread not found", decodeBody(t, rec)["error"])
}

func TestDeleteThreadEndpoint_AlwaysReportsSuccess(t *testing.T) {
	env := newTestEnv(t, 1)
	th := env.createThread(t, 1)

	rec := env.do(t, "DELETE", fmt.Sprintf("/api/threads/%d/delete", th.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])

	// A second delete, and a delete of a thread that never existed, answer
	// the same way.
	rec = env.do(t, "DELETE", fmt.Sprintf("/api/threads/%d/delete", th.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])

	rec = env.do(t, "DELETE", "/api/threads/9999/delete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])
}

func TestListThreadsEndpoint_EmptyList(t *testing.T) {
	env := newTestEnv(t, 1)

	rec := env.do(t, "GET", "/api/threads", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{}, decodeBody(t, rec)["threads"])
}

func TestHistoryEndpoint_EmptyList(t *testing.T) {
	env := newTestEnv(t, 1)

	rec := env.do(t, "GET", "/api/history", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{}, decodeBody(t, rec)["chats"])
}
