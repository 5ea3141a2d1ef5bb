package commands

import (
	"ChatVault/internal/cli/api"
	"ChatVault/internal/config"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
)

type downloadCmd struct{}

func (downloadCmd) Name() string        { return "download" }
func (downloadCmd) Description() string { return "Скачать блоб чата в файл" }
func (downloadCmd) Usage() string       { return "download <chatId> <outFile>" }

func (downloadCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	resp, body, err := api.Get(ctx, apiURL(cfg, "/api/chats/"+args[0]+"/blob"), api.LoadToken())
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server: %s", strings.TrimSpace(string(body)))
	}
	if err := os.WriteFile(args[1], body, 0o600); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Saved %d bytes (%s) to %s\n", len(body), resp.Header.Get("Content-Type"), args[1])
	return nil
}

func init() { RegisterCmd(downloadCmd{}) }
