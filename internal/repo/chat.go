package repo

import (
	"ChatVault/internal/model"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Колонки метаданных: поле data намеренно не выбирается нигде,
// кроме явного запроса блоба.
var chatMetaColumns = []string{"id", "user_id", "name", "mime_type", "created_at", "updated_at"}

// sortClauses — allow-list сортировок списка. Ключ приходит от клиента,
// но в запрос попадает только значение из этой таблицы.
// Асимметрия updatedAt DESC — осознанная: «последние изменённые сверху».
var sortClauses = map[string]string{
	"name":      "name ASC",
	"createdAt": "created_at ASC",
	"updatedAt": "updated_at DESC",
}

// SortKeys возвращает допустимые значения sortBy (для валидации и сообщений об ошибке).
func SortKeys() []string {
	return []string{"name", "createdAt", "updatedAt"}
}

// ChatRepository — контракт доступа к Chat для слоя сервиса.
// Все операции, кроме GetAnyByID, ограничены владельцем через предикат запроса.
type ChatRepository interface {
	// Create вставляет новую запись; id назначает БД, метки времени — GORM.
	Create(ctx context.Context, chat *model.Chat) error

	// List возвращает страницу метаданных чатов пользователя и общее число его чатов.
	// Постраничность offset-based: skip perPage*(page-1), take perPage.
	// Дефолтов пейджинга здесь нет — валидность page/perPage обеспечивает вызывающий.
	List(ctx context.Context, userID int64, page, perPage int, sortBy string) ([]model.Chat, int64, error)

	// GetByID ищет чат по (userID, chatID). Владелец — часть предиката,
	// чтобы чужой chatID был неотличим от несуществующего.
	GetByID(ctx context.Context, userID, chatID int64, includeData bool) (*model.Chat, error)

	// GetAnyByID ищет чат только по chatID — для доступа по share-токену.
	GetAnyByID(ctx context.Context, chatID int64, includeData bool) (*model.Chat, error)

	// Rename обновляет name и updated_at по предикату (userID, chatID).
	// Ноль затронутых строк — gorm.ErrRecordNotFound.
	Rename(ctx context.Context, userID, chatID int64, name string) (*model.Chat, error)

	// Delete удаляет запись вместе с байтами. Ноль строк — gorm.ErrRecordNotFound.
	Delete(ctx context.Context, userID, chatID int64) error

	// ExistsForUser — дешёвая проверка существования и владения перед выдачей токена.
	ExistsForUser(ctx context.Context, userID, chatID int64) (bool, error)
}

type chatRepo struct {
	db *gorm.DB
}

// NewChatRepository создаёт реализацию репозитория для Chat.
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) Create(ctx context.Context, chat *model.Chat) error {
	return r.db.WithContext(ctx).Create(chat).Error
}

func (r *chatRepo) List(ctx context.Context, userID int64, page, perPage int, sortBy string) ([]model.Chat, int64, error) {
	order, ok := sortClauses[sortBy]
	if !ok {
		return nil, 0, fmt.Errorf("unknown sort key %q", sortBy)
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Chat{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var chats []model.Chat
	err := r.db.WithContext(ctx).
		Select(chatMetaColumns).
		Where("user_id = ?", userID).
		Order(order).
		Offset(perPage * (page - 1)).
		Limit(perPage).
		Find(&chats).Error
	if err != nil {
		return nil, 0, err
	}
	return chats, total, nil
}

func (r *chatRepo) GetByID(ctx context.Context, userID, chatID int64, includeData bool) (*model.Chat, error) {
	q := r.db.WithContext(ctx)
	if !includeData {
		q = q.Select(chatMetaColumns)
	}
	var c model.Chat
	if err := q.Where("user_id = ? AND id = ?", userID, chatID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *chatRepo) GetAnyByID(ctx context.Context, chatID int64, includeData bool) (*model.Chat, error) {
	q := r.db.WithContext(ctx)
	if !includeData {
		q = q.Select(chatMetaColumns)
	}
	var c model.Chat
	if err := q.Where("id = ?", chatID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *chatRepo) Rename(ctx context.Context, userID, chatID int64, name string) (*model.Chat, error) {
	tx := r.db.WithContext(ctx).Model(&model.Chat{}).
		Where("user_id = ? AND id = ?", userID, chatID).
		Updates(map[string]any{"name": name, "updated_at": time.Now().UTC()})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, userID, chatID, false)
}

func (r *chatRepo) Delete(ctx context.Context, userID, chatID int64) error {
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, chatID).
		Delete(&model.Chat{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *chatRepo) ExistsForUser(ctx context.Context, userID, chatID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Chat{}).
		Where("user_id = ? AND id = ?", userID, chatID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
