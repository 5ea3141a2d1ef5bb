package commands

import (
	"ChatVault/internal/cli/api"
	"ChatVault/internal/config"
	"context"
	"fmt"
	"net/http"
	"strings"
)

type deleteCmd struct{}

func (deleteCmd) Name() string        { return "delete" }
func (deleteCmd) Description() string { return "Удалить чат вместе с данными" }
func (deleteCmd) Usage() string       { return "delete <chatId>" }

func (deleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	resp, body, err := api.DoJSON(ctx, http.MethodDelete, apiURL(cfg, "/api/chats/"+args[0]), nil, api.LoadToken())
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server: %s", strings.TrimSpace(string(body)))
	}
	fmt.Fprintln(Out, "Deleted")
	return nil
}

func init() { RegisterCmd(deleteCmd{}) }
