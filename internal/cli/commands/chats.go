package commands

import (
	"ChatVault/internal/cli/api"
	"ChatVault/internal/config"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type chatsCmd struct{}

func (chatsCmd) Name() string { return "chats" }
func (chatsCmd) Description() string {
	return "Показать страницу чатов"
}
func (chatsCmd) Usage() string { return "chats <page> <perPage> [name|createdAt|updatedAt]" }

func (chatsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return ErrUsage
	}
	sortBy := "updatedAt"
	if len(args) == 3 {
		sortBy = args[2]
	}

	url := apiURL(cfg, fmt.Sprintf("/api/chats?page=%s&perPage=%s&sortBy=%s", args[0], args[1], sortBy))
	resp, body, err := api.Get(ctx, url, api.LoadToken())
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server: %s", strings.TrimSpace(string(body)))
	}

	var chats []chatDTO
	if err := json.Unmarshal(body, &chats); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if len(chats) == 0 {
		fmt.Fprintln(Out, "Нет чатов")
		return nil
	}
	for _, c := range chats {
		fmt.Fprintf(Out, "- %d  name=%s  mime=%s  updated=%s\n", c.ChatID, c.Name, c.MimeType, c.UpdatedAt)
	}
	if link := resp.Header.Get("Link"); link != "" {
		fmt.Fprintf(Out, "Link: %s\n", link)
	}
	return nil
}

func init() { RegisterCmd(chatsCmd{}) }
