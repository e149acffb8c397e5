package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/linearcli/linearcli/internal/config"
)

type AuthCmd struct {
	Login  AuthLoginCmd  `cmd:"" help:"Store an API key after verifying it"`
	Status AuthStatusCmd `cmd:"" help:"Show which credential would be used"`
	Logout AuthLogoutCmd `cmd:"" help:"Remove the active profile's API key"`
}

type AuthLoginCmd struct {
	Profile string `help:"Profile to store the key under (default: active profile)"`
}

type AuthStatusCmd struct{}

type AuthLogoutCmd struct {
	Profile string `help:"Profile to log out of (default: active profile)"`
}

func (c *AuthLoginCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	key, err := promptAPIKey(cmdCtx)
	if err != nil {
		return exitError(exitGeneral, err)
	}

	client := cmdCtx.deps.NewClient(key, cmdCtx.global.Timeout)
	me, err := client.Me(ctx)
	if err != nil {
		return classified(fmt.Errorf("verify key: %w", err))
	}

	if err := cmdCtx.deps.Config.SetAPIKey(c.Profile, key, cmdCtx.deps.Now()); err != nil {
		return exitError(exitGeneral, err)
	}
	out := outputFor(cmdCtx)
	if out.Structured() {
		return out.Print(map[string]any{"user": me.Name, "email": me.Email})
	}
	out.Infof("Logged in as %s (%s)", me.Name, me.Email)
	return nil
}

func (c *AuthStatusCmd) Run(cmdCtx *commandContext) error {
	key, source, err := cmdCtx.resolveAPIKey()
	out := outputFor(cmdCtx)
	if err != nil {
		if out.Structured() {
			if printErr := out.Print(map[string]any{"authenticated": false}); printErr != nil {
				return printErr
			}
		} else {
			out.Infof("Not authenticated: %v", err)
		}
		return exitError(exitAuth, err)
	}
	if out.Structured() {
		return out.Print(map[string]any{
			"authenticated": true,
			"source":        source,
			"key_suffix":    keySuffix(key),
		})
	}
	out.Infof("Authenticated via %s (key ...%s)", source, keySuffix(key))
	return nil
}

func (c *AuthLogoutCmd) Run(cmdCtx *commandContext) error {
	profile := c.Profile
	if profile == "" {
		file, _, err := cmdCtx.deps.Config.Load()
		if err != nil {
			return exitError(exitGeneral, err)
		}
		profile = config.ActiveProfile(file, os.Getenv(config.EnvProfile))
	}
	if err := cmdCtx.deps.Config.RemoveProfile(profile); err != nil {
		return exitError(exitGeneral, err)
	}
	outputFor(cmdCtx).Infof("Logged out of profile %s", profile)
	return nil
}

// promptAPIKey reads the key without echo on a terminal; with --no-input
// or piped stdin it falls back to reading one line.
func promptAPIKey(cmdCtx *commandContext) (string, error) {
	stdin, isFile := cmdCtx.deps.In.(*os.File)
	if !cmdCtx.global.NoInput && isFile && term.IsTerminal(int(stdin.Fd())) {
		_, _ = fmt.Fprint(cmdCtx.deps.Out, "Linear API key: ")
		raw, err := term.ReadPassword(int(stdin.Fd()))
		_, _ = fmt.Fprintln(cmdCtx.deps.Out)
		if err != nil {
			return "", fmt.Errorf("read key: %w", err)
		}
		return validateKeyInput(string(raw))
	}

	reader := bufio.NewReader(cmdCtx.deps.In)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read key: %w", err)
	}
	return validateKeyInput(line)
}

func validateKeyInput(raw string) (string, error) {
	key := strings.TrimSpace(raw)
	if key == "" {
		return "", fmt.Errorf("api key is empty")
	}
	return key, nil
}

func keySuffix(key string) string {
	if len(key) <= 4 {
		return key
	}
	return key[len(key)-4:]
}
