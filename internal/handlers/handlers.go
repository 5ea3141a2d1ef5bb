package handlers

import (
	"ChatVault/internal/config"
	"ChatVault/internal/middleware"
	"ChatVault/internal/service"
	"ChatVault/internal/token"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	chatService *service.ChatService,
	shareService *token.ShareService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	chatHandler := NewChatHandler(chatService, userService, shareService, logger, config)
	sharedHandler := NewSharedHandler(chatService, shareService, logger, config)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Post("/api/user/status", userHandler.Status)

	// Owner-scoped chat routes
	r.Route("/api/chats", func(r chi.Router) {
		r.Post("/", chatHandler.Create)
		r.Get("/", chatHandler.List)
		r.Get("/{chatID}", chatHandler.Get)
		r.Patch("/{chatID}", chatHandler.Rename)
		r.Delete("/{chatID}", chatHandler.Delete)
		r.Get("/{chatID}/blob", chatHandler.GetBlob)
		r.Get("/{chatID}/token", chatHandler.IssueShareToken)
	})

	// Token-scoped routes: доступ по share-токену, без аккаунта
	r.Get("/api/shared/{token}", sharedHandler.Get)
	r.Get("/api/shared/{token}/blob", sharedHandler.GetBlob)

	return &Handler{Router: r}
}

// writeJSON сериализует ответ; статус должен быть выставлен до вызова Write
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
