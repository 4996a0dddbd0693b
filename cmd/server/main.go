// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/sarmadi/go-chathub/internal/config"
	"github.com/sarmadi/go-chathub/internal/domain"
	"github.com/sarmadi/go-chathub/internal/handlers"
	"github.com/sarmadi/go-chathub/internal/middleware"
	"github.com/sarmadi/go-chathub/internal/ratelimit"
	"github.com/sarmadi/go-chathub/internal/repository/message"
	"github.com/sarmadi/go-chathub/internal/repository/thread"
	"github.com/sarmadi/go-chathub/internal/repository/user"
	"github.com/sarmadi/go-chathub/internal/services"
	"github.com/sarmadi/go-chathub/internal/services/gemini"
	"github.com/sarmadi/go-chathub/internal/services/user_services"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func newProvider(cfg *config.Config) gemini.Provider {
	switch strings.ToLower(cfg.GenerationProvider) {
	case "openai":
		return gemini.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	default:
		genCfg := gemini.DefaultConfig()
		genCfg.APIKey = cfg.GeminiAPIKey
		genCfg.Model = cfg.GeminiModel
		genCfg.Timeout = time.Duration(cfg.GenerationTimeoutSeconds) * time.Second
		return gemini.NewGeminiProvider(genCfg)
	}
}

func main() {
	cfg := config.Load()
	logger := services.NewLogger("go_chathub")

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Thread{}, &domain.Message{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := user.NewGormUserRepository(db)
	threadRepo := thread.NewThreadRepository(db)
	messageRepo := message.NewMessageRepository(db)

	// --- Services ---
	authService := user_services.NewAuthService(userRepo, cfg.JWTSecretKey, logger)
	chatService, err := services.NewChatService(threadRepo, messageRepo, newProvider(cfg), logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Chat Service: %v", err)
	}

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	threadHandler := handlers.NewThreadHandler(chatService)
	chatHandler := handlers.NewChatHandler(chatService)

	// --- Router Setup ---
	r := mux.NewRouter()
	authMiddleware := middleware.NewJWTMiddleware(authService)
	authLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.DefaultAuthConfig())
	defer authLimiter.Close()

	r.Use(corsMiddleware)
	r.Use(middleware.RequestID)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	// --- Public Routes ---
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	limited := middleware.RateLimitMiddleware(authLimiter, "auth")
	r.Handle("/register", limited(http.HandlerFunc(authHandler.Register))).Methods("POST")
	r.Handle("/login", limited(http.HandlerFunc(authHandler.Login))).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("GET")

	// --- Protected API Routes ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware)
	api.HandleFunc("/threads", threadHandler.ListThreads).Methods("GET")
	api.HandleFunc("/threads/new", threadHandler.CreateThread).Methods("POST")
	api.HandleFunc("/threads/{id:[0-9]+}", threadHandler.GetThread).Methods("GET")
	api.HandleFunc("/threads/{id:[0-9]+}/rename", threadHandler.RenameThread).Methods("PATCH")
	api.HandleFunc("/threads/{id:[0-9]+}/delete", threadHandler.DeleteThread).Methods("DELETE")
	api.HandleFunc("/chat", chatHandler.HandleChatMessage).Methods("POST")
	api.HandleFunc("/chat/temporary", chatHandler.HandleTemporaryChatMessage).Methods("POST")
	api.HandleFunc("/history", chatHandler.GetHistory).Methods("GET")

	// --- Server Configuration ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	log.Printf("Server starting on port %s", cfg.ServerPort)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
