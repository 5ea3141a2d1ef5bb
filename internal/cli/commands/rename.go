package commands

import (
	"ChatVault/internal/cli/api"
	"ChatVault/internal/config"
	"context"
	"fmt"
	"net/http"
	"strings"
)

type renameCmd struct{}

func (renameCmd) Name() string        { return "rename" }
func (renameCmd) Description() string { return "Переименовать чат" }
func (renameCmd) Usage() string       { return "rename <chatId> <newName>" }

func (renameCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	payload := map[string]string{"name": strings.Join(args[1:], " ")}
	resp, body, err := api.DoJSON(ctx, http.MethodPatch, apiURL(cfg, "/api/chats/"+args[0]), payload, api.LoadToken())
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server: %s", strings.TrimSpace(string(body)))
	}
	fmt.Fprintln(Out, "Renamed")
	return nil
}

func init() { RegisterCmd(renameCmd{}) }
