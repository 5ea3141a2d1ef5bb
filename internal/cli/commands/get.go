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

type getCmd struct{}

func (getCmd) Name() string        { return "get" }
func (getCmd) Description() string { return "Показать метаданные чата" }
func (getCmd) Usage() string       { return "get <chatId>" }

func (getCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	resp, body, err := api.Get(ctx, apiURL(cfg, "/api/chats/"+args[0]), api.LoadToken())
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
	fmt.Fprintf(Out, "id=%d\nname=%s\nmime=%s\nblob=%s\ncreated=%s\nupdated=%s\n",
		c.ChatID, c.Name, c.MimeType, c.BlobURL, c.CreatedAt, c.UpdatedAt)
	return nil
}

func init() { RegisterCmd(getCmd{}) }
