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

type shareCmd struct{}

func (shareCmd) Name() string        { return "share" }
func (shareCmd) Description() string { return "Выпустить share-ссылку на чат" }
func (shareCmd) Usage() string       { return "share <chatId> [expiresIn]" }

func (shareCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	url := apiURL(cfg, "/api/chats/"+args[0]+"/token")
	if len(args) == 2 {
		url += "?expiresIn=" + args[1]
	}
	resp, body, err := api.Get(ctx, url, api.LoadToken())
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server: %s", strings.TrimSpace(string(body)))
	}
	tok := resp.Header.Get("Chat-Token")
	if tok == "" {
		return errors.New("server did not return a share token")
	}
	fmt.Fprintf(Out, "Token: %s\n", tok)
	fmt.Fprintf(Out, "Link:  %s\n", apiURL(cfg, "/api/shared/"+tok))
	return nil
}

func init() { RegisterCmd(shareCmd{}) }
