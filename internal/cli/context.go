package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/linearcli/linearcli/internal/config"
	"github.com/linearcli/linearcli/internal/linear"
)

type commandContext struct {
	deps   Dependencies
	global *GlobalOptions
	out    output
}

// resolveAPIKey follows the credential precedence: --api-key flag, then
// LINEAR_API_KEY, then the active profile in the config file.
func (c *commandContext) resolveAPIKey() (string, string, error) {
	if c.global.APIKey != "" {
		return c.global.APIKey, "flag", nil
	}
	if env := os.Getenv(config.EnvAPIKey); env != "" {
		return env, "env", nil
	}
	if c.deps.Config != nil {
		key, profile, ok, err := c.deps.Config.APIKey(os.Getenv(config.EnvProfile))
		if err != nil {
			return "", "", err
		}
		if ok {
			return key, fmt.Sprintf("profile %s", profile), nil
		}
	}
	return "", "", fmt.Errorf("%w: no API key found; run 'linear auth login' or set %s",
		linear.ErrUnauthorized, config.EnvAPIKey)
}

func (c *commandContext) apiClient() (linear.API, error) {
	key, _, err := c.resolveAPIKey()
	if err != nil {
		return nil, err
	}
	if c.deps.NewClient == nil {
		return nil, errors.New("no API client configured")
	}
	return c.deps.NewClient(key, c.global.Timeout), nil
}

func outputFor(ctx *commandContext) output {
	return ctx.out
}
