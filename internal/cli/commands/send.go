package commands

import (
	"ChatVault/internal/cli/api"
	"ChatVault/internal/config"
	"ChatVault/internal/datauri"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

type SendRequest struct {
	Base64 string `json:"base64"`
	Name   string `json:"name"`
}

type sendCmd struct{}

func (sendCmd) Name() string        { return "send" }
func (sendCmd) Description() string { return "Загрузить файл как новый чат" }
func (sendCmd) Usage() string       { return "send <name> <file>" }

func (sendCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	name, path := args[0], args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	// mime по расширению, иначе по содержимому
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	// DetectContentType может вернуть параметры (charset) — серверу нужен чистый тип
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	req := SendRequest{Base64: datauri.Encode(mimeType, data), Name: name}
	resp, body, err := api.PostJSON(ctx, apiURL(cfg, "/api/chats"), req, api.LoadToken())
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server: %s", strings.TrimSpace(string(body)))
	}

	var c chatDTO
	if err := json.Unmarshal(body, &c); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	fmt.Fprintf(Out, "Uploaded chat %d (%s, %d bytes)\n", c.ChatID, c.MimeType, len(data))
	return nil
}

func init() { RegisterCmd(sendCmd{}) }
