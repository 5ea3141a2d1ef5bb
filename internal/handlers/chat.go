package handlers

import (
	"ChatVault/internal/config"
	"ChatVault/internal/datauri"
	"ChatVault/internal/model"
	"ChatVault/internal/repo"
	"ChatVault/internal/service"
	"ChatVault/internal/token"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ChatHandler обрабатывает owner-scoped операции над чатами.
type ChatHandler struct {
	ChatService  *service.ChatService
	UserService  *service.UserService
	ShareService *token.ShareService
	Logger       *zap.SugaredLogger
	Config       *config.Config
}

func NewChatHandler(
	chatService *service.ChatService,
	userService *service.UserService,
	shareService *token.ShareService,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *ChatHandler {
	return &ChatHandler{
		ChatService:  chatService,
		UserService:  userService,
		ShareService: shareService,
		Logger:       logger,
		Config:       cfg,
	}
}

// ChatResponse — метаданные чата в ответах API. Поле data не отдаётся
// никогда: вместо него blobUrl на отдельный бинарный эндпоинт.
type ChatResponse struct {
	ChatID    int64  `json:"chatId"`
	UserID    int64  `json:"userId"`
	Name      string `json:"name"`
	MimeType  string `json:"mimeType"`
	BlobURL   string `json:"blobUrl"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// blobURL собирает абсолютный адрес blob-эндпоинта без двойных слешей.
func blobURL(cfg *config.Config, chatID int64) string {
	return fmt.Sprintf("%s/api/chats/%d/blob", strings.TrimRight(cfg.ServerURL, "/"), chatID)
}

func toChatResponse(cfg *config.Config, c *model.Chat) ChatResponse {
	return ChatResponse{
		ChatID:    c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		MimeType:  c.MimeType,
		BlobURL:   blobURL(cfg, c.ID),
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func sortKeys() []string { return repo.SortKeys() }

func validSortKey(k string) bool {
	for _, s := range sortKeys() {
		if s == k {
			return true
		}
	}
	return false
}

// chatIDParam разбирает {chatID} из пути. Нечисловой id неотличим от несуществующего.
func chatIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "chatID"), 10, 64)
}

type createChatRequest struct {
	Base64 string `json:"base64"`
	Name   string `json:"name"`
}

// Create принимает {base64: dataURI, name} и сохраняет новый чат.
func (h *ChatHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := resolveUser(w, r, h.UserService, h.Logger)
	if !ok {
		return
	}

	// Лимит тела: сам блоб плюс запас на JSON-обвязку
	maxBody := int64(h.Config.BlobMaxSizeMB)*1024*1024 + 1*1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	var req createChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Create: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	chat, err := h.ChatService.Create(r.Context(), userID, req.Name, req.Base64)
	if err != nil {
		if errors.Is(err, datauri.ErrMalformedBlob) || errors.Is(err, service.ErrEmptyName) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.Logger.Errorw("Create: service error", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toChatResponse(h.Config, chat))
}

// List отдаёт страницу метаданных с Link-заголовком prev/next.
// page и perPage обязательны: дефолтов пейджинга у стора нет.
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := resolveUser(w, r, h.UserService, h.Logger)
	if !ok {
		return
	}

	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		http.Error(w, "page must be a positive integer", http.StatusBadRequest)
		return
	}
	perPage, err := strconv.Atoi(q.Get("perPage"))
	if err != nil || perPage < 1 {
		http.Error(w, "perPage must be a positive integer", http.StatusBadRequest)
		return
	}
	sortBy := q.Get("sortBy")
	if !validSortKey(sortBy) {
		http.Error(w, "sortBy must be one of: "+strings.Join(sortKeys(), ", "), http.StatusBadRequest)
		return
	}

	chats, total, err := h.ChatService.List(r.Context(), userID, page, perPage, sortBy)
	if err != nil {
		h.Logger.Errorw("List: service error", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if link := buildLinkHeader(h.Config.ServerURL, page, perPage, sortBy, total); link != "" {
		w.Header().Set("Link", link)
	}

	items := make([]ChatResponse, 0, len(chats))
	for i := range chats {
		items = append(items, toChatResponse(h.Config, &chats[i]))
	}
	writeJSON(w, http.StatusOK, items)
}

// buildLinkHeader собирает RFC 8288 Link: rel="prev" есть только при page>1,
// rel="next" — только при page < ceil(total/perPage).
func buildLinkHeader(base string, page, perPage int, sortBy string, total int64) string {
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	pageURL := func(p int) string {
		return fmt.Sprintf("%s/api/chats?page=%d&perPage=%d&sortBy=%s",
			strings.TrimRight(base, "/"), p, perPage, sortBy)
	}
	var parts []string
	if page > 1 {
		parts = append(parts, fmt.Sprintf("<%s>; rel=\"prev\"", pageURL(page-1)))
	}
	if page < totalPages {
		parts = append(parts, fmt.Sprintf("<%s>; rel=\"next\"", pageURL(page+1)))
	}
	return strings.Join(parts, ", ")
}

// Get отдаёт метаданные одного чата владельца.
func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := resolveUser(w, r, h.UserService, h.Logger)
	if !ok {
		return
	}
	chatID, err := chatIDParam(r)
	if err != nil {
		http.Error(w, "chat not found", http.StatusNotFound)
		return
	}

	chat, err := h.ChatService.Get(r.Context(), userID, chatID)
	if err != nil {
		h.respondChatError(w, err, userID, chatID, "Get")
		return
	}
	writeJSON(w, http.StatusOK, toChatResponse(h.Config, chat))
}

type renameChatRequest struct {
	Name string `json:"name"`
}

// Rename меняет имя чата; mime и байты неизменяемы.
func (h *ChatHandler) Rename(w http.ResponseWriter, r *http.Request) {
	userID, ok := resolveUser(w, r, h.UserService, h.Logger)
	if !ok {
		return
	}
	chatID, err := chatIDParam(r)
	if err != nil {
		http.Error(w, "chat not found", http.StatusNotFound)
		return
	}

	var req renameChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	chat, err := h.ChatService.Rename(r.Context(), userID, chatID, req.Name)
	if err != nil {
		h.respondChatError(w, err, userID, chatID, "Rename")
		return
	}
	writeJSON(w, http.StatusOK, toChatResponse(h.Config, chat))
}

// Delete удаляет чат и его байты.
func (h *ChatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := resolveUser(w, r, h.UserService, h.Logger)
	if !ok {
		return
	}
	chatID, err := chatIDParam(r)
	if err != nil {
		http.Error(w, "chat not found", http.StatusNotFound)
		return
	}

	if err := h.ChatService.Delete(r.Context(), userID, chatID); err != nil {
		h.respondChatError(w, err, userID, chatID, "Delete")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

// GetBlob отдаёт сырые байты с Content-Type из записи.
func (h *ChatHandler) GetBlob(w http.ResponseWriter, r *http.Request) {
	userID, ok := resolveUser(w, r, h.UserService, h.Logger)
	if !ok {
		return
	}
	chatID, err := chatIDParam(r)
	if err != nil {
		http.Error(w, "chat not found", http.StatusNotFound)
		return
	}

	chat, err := h.ChatService.GetBlob(r.Context(), userID, chatID)
	if err != nil {
		h.respondChatError(w, err, userID, chatID, "GetBlob")
		return
	}
	w.Header().Set("Content-Type", chat.MimeType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(chat.Data)
}

// ShareTokenHeader — заголовок ответа с выпущенным share-токеном.
const ShareTokenHeader = "Chat-Token"

// IssueShareToken выпускает share-токен на чтение чата.
// Существование и владение проверяются до выпуска.
func (h *ChatHandler) IssueShareToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := resolveUser(w, r, h.UserService, h.Logger)
	if !ok {
		return
	}
	chatID, err := chatIDParam(r)
	if err != nil {
		http.Error(w, "chat not found", http.StatusNotFound)
		return
	}

	ttl, err := token.ParseTTL(r.URL.Query().Get("expiresIn"))
	if err != nil {
		http.Error(w, "expiresIn is not a valid duration", http.StatusBadRequest)
		return
	}

	exists, err := h.ChatService.ExistsForUser(r.Context(), userID, chatID)
	if err != nil {
		h.Logger.Errorw("IssueShareToken: exists check failed", "user_id", userID, "chat_id", chatID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !exists {
		http.Error(w, "chat not found", http.StatusNotFound)
		return
	}

	tok, err := h.ShareService.Issue(chatID, ttl)
	if err != nil {
		h.Logger.Errorw("IssueShareToken: sign failed", "chat_id", chatID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set(ShareTokenHeader, tok)
	writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

func (h *ChatHandler) respondChatError(w http.ResponseWriter, err error, userID, chatID int64, op string) {
	if errors.Is(err, service.ErrChatNotFound) {
		http.Error(w, "chat not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, service.ErrEmptyName) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.Logger.Errorw(op+": service error", "user_id", userID, "chat_id", chatID, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
