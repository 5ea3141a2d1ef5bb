package handlers

import (
	"ChatVault/internal/config"
	"ChatVault/internal/model"
	"ChatVault/internal/service"
	"ChatVault/internal/token"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SharedHandler обслуживает доступ по share-токену: проверка владельца
// намеренно отсутствует — токен сам по себе capability на чтение чата.
type SharedHandler struct {
	ChatService  *service.ChatService
	ShareService *token.ShareService
	Logger       *zap.SugaredLogger
	Config       *config.Config
}

func NewSharedHandler(
	chatService *service.ChatService,
	shareService *token.ShareService,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *SharedHandler {
	return &SharedHandler{ChatService: chatService, ShareService: shareService, Logger: logger, Config: cfg}
}

// SharedChatResponse — урезанные метаданные для получателя ссылки:
// в отличие от владельца, name ему не показывается.
type SharedChatResponse struct {
	ChatID    int64  `json:"chatId"`
	UserID    int64  `json:"userId"`
	MimeType  string `json:"mimeType"`
	BlobURL   string `json:"blobUrl"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toSharedChatResponse(cfg *config.Config, c *model.Chat) SharedChatResponse {
	return SharedChatResponse{
		ChatID:    c.ID,
		UserID:    c.UserID,
		MimeType:  c.MimeType,
		BlobURL:   blobURL(cfg, c.ID),
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// resolveShared проверяет токен и находит чат. Любой отказ — 410:
// для получателя ссылки «истёк», «подделан» и «чат удалён» — одно и то же.
func (h *SharedHandler) resolveShared(w http.ResponseWriter, r *http.Request, includeData bool) (*model.Chat, bool) {
	chatID, err := h.ShareService.Verify(chi.URLParam(r, "token"))
	if err != nil {
		http.Error(w, "link is no longer valid", http.StatusGone)
		return nil, false
	}
	chat, err := h.ChatService.GetShared(r.Context(), chatID, includeData)
	if err != nil {
		if errors.Is(err, service.ErrChatNotFound) {
			http.Error(w, "link is no longer valid", http.StatusGone)
			return nil, false
		}
		h.Logger.Errorw("shared: chat lookup failed", "chat_id", chatID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	return chat, true
}

// Get отдаёт метаданные чата по share-токену (без name).
func (h *SharedHandler) Get(w http.ResponseWriter, r *http.Request) {
	chat, ok := h.resolveShared(w, r, false)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSharedChatResponse(h.Config, chat))
}

// GetBlob отдаёт сырые байты чата по share-токену.
func (h *SharedHandler) GetBlob(w http.ResponseWriter, r *http.Request) {
	chat, ok := h.resolveShared(w, r, true)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", chat.MimeType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(chat.Data)
}
