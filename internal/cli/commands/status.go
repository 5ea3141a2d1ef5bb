package commands

import (
	"ChatVault/internal/cli/api"
	"ChatVault/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Проверить сохранённый креденшл" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	tok := api.LoadToken()
	if tok == "" {
		fmt.Fprintln(Out, "Not logged in")
		return nil
	}
	resp, body, err := api.PostJSON(ctx, apiURL(cfg, "/api/user/status"), struct{}{}, tok)
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		fmt.Fprintf(Out, "Logged in: %s\n", strings.TrimSpace(string(body)))
		return nil
	case http.StatusForbidden, http.StatusNotFound:
		fmt.Fprintln(Out, "Stored credential is no longer valid")
		return nil
	default:
		return errors.New(strings.TrimSpace(string(body)))
	}
}

func init() { RegisterCmd(statusCmd{}) }
