package commands

import (
	"ChatVault/internal/config"
	"strings"
)

// apiURL собирает абсолютный адрес эндпоинта из базового URL сервера.
func apiURL(cfg *config.Config, path string) string {
	return strings.TrimRight(cfg.ServerURL, "/") + path
}

// chatDTO — метаданные чата, как их отдаёт сервер.
type chatDTO struct {
	ChatID    int64  `json:"chatId"`
	UserID    int64  `json:"userId"`
	Name      string `json:"name"`
	MimeType  string `json:"mimeType"`
	BlobURL   string `json:"blobUrl"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
