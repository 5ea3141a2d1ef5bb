package service

import (
	"ChatVault/internal/datauri"
	"ChatVault/internal/model"
	"ChatVault/internal/repo"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrChatNotFound — чат отсутствует либо принадлежит другому пользователю.
	// Снаружи эти два случая неразличимы.
	ErrChatNotFound = errors.New("chat not found")

	// ErrEmptyName — имя чата обязательно и не может быть пустым.
	ErrEmptyName = errors.New("chat name must not be empty")
)

// ChatService инкапсулирует бизнес-логику работы с чатами:
// валидация, декодирование data-URI и оркестрация репозитория.
type ChatService struct {
	repo   repo.ChatRepository
	logger *zap.SugaredLogger
}

func NewChatService(r repo.ChatRepository, logger *zap.SugaredLogger) *ChatService {
	return &ChatService{repo: r, logger: logger}
}

// Create декодирует data-URI и сохраняет новый чат.
// MimeType и Data фиксируются здесь один раз и дальше не меняются.
func (s *ChatService) Create(ctx context.Context, userID int64, name, dataURI string) (*model.Chat, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	mime, data, err := datauri.Decode(dataURI)
	if err != nil {
		return nil, err
	}
	chat := &model.Chat{UserID: userID, Name: name, MimeType: mime, Data: data}
	if err := s.repo.Create(ctx, chat); err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}
	s.logger.Infow("chat created", "user_id", userID, "chat_id", chat.ID, "mime", mime, "size", len(data))
	return chat, nil
}

// List возвращает страницу метаданных и общее число чатов пользователя.
// Валидность page/perPage/sortBy обеспечивает вызывающий слой.
func (s *ChatService) List(ctx context.Context, userID int64, page, perPage int, sortBy string) ([]model.Chat, int64, error) {
	return s.repo.List(ctx, userID, page, perPage, sortBy)
}

// Get возвращает метаданные чата владельца.
func (s *ChatService) Get(ctx context.Context, userID, chatID int64) (*model.Chat, error) {
	return s.mapNotFound(s.repo.GetByID(ctx, userID, chatID, false))
}

// GetBlob возвращает чат вместе с байтами — для blob-эндпоинта.
func (s *ChatService) GetBlob(ctx context.Context, userID, chatID int64) (*model.Chat, error) {
	return s.mapNotFound(s.repo.GetByID(ctx, userID, chatID, true))
}

// GetShared возвращает чат по одному chatID — доступ по share-токену,
// проверка владельца намеренно отсутствует.
func (s *ChatService) GetShared(ctx context.Context, chatID int64, includeData bool) (*model.Chat, error) {
	return s.mapNotFound(s.repo.GetAnyByID(ctx, chatID, includeData))
}

// Rename меняет имя чата. Имя валидируется здесь, владение — предикатом в БД.
func (s *ChatService) Rename(ctx context.Context, userID, chatID int64, name string) (*model.Chat, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return s.mapNotFound(s.repo.Rename(ctx, userID, chatID, name))
}

// Delete удаляет чат вместе с байтами.
func (s *ChatService) Delete(ctx context.Context, userID, chatID int64) error {
	err := s.repo.Delete(ctx, userID, chatID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrChatNotFound
	}
	if err == nil {
		s.logger.Infow("chat deleted", "user_id", userID, "chat_id", chatID)
	}
	return err
}

// ExistsForUser — проверка существования и владения перед выдачей share-токена.
func (s *ChatService) ExistsForUser(ctx context.Context, userID, chatID int64) (bool, error) {
	return s.repo.ExistsForUser(ctx, userID, chatID)
}

func (s *ChatService) mapNotFound(c *model.Chat, err error) (*model.Chat, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChatNotFound
	}
	return c, err
}
