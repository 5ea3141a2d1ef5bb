package model

import "time"

// Chat — серверная модель сохранённого бинарного блоба («чата»).
// Поля MimeType и Data задаются один раз при создании и не меняются;
// переименование трогает только Name и UpdatedAt.
type Chat struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"not null;index"` // ссылка на users.id

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Name     string `gorm:"not null"`
	MimeType string `gorm:"not null"`
	Data     []byte // не выбирается в списках/метаданных, только через blob-эндпоинт

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
