package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/linearcli/linearcli/internal/config"
)

type ConfigCmd struct {
	SetKey  ConfigSetKeyCmd  `cmd:"" name:"set-key" help:"Store an API key in the config file"`
	Show    ConfigShowCmd    `cmd:"" help:"Show the effective configuration"`
	Profile ConfigProfileCmd `cmd:"" help:"Manage named profiles"`
}

type ConfigSetKeyCmd struct {
	Key     string `arg:"" help:"Linear API key, or '-' to read it from stdin"`
	Profile string `help:"Profile to store the key under (default: active profile)"`
}

type ConfigShowCmd struct{}

type ConfigProfileCmd struct {
	Add     ConfigProfileAddCmd     `cmd:"" help:"Add a profile with an API key"`
	List    ConfigProfileListCmd    `cmd:"" help:"List profiles"`
	Switch  ConfigProfileSwitchCmd  `cmd:"" help:"Make a profile current"`
	Current ConfigProfileCurrentCmd `cmd:"" help:"Print the active profile"`
	Remove  ConfigProfileRemoveCmd  `cmd:"" help:"Delete a profile"`
}

type ConfigProfileAddCmd struct {
	Name string `arg:"" help:"Profile name"`
	Key  string `arg:"" help:"Linear API key, or '-' to read it from stdin"`
}

type ConfigProfileListCmd struct{}

type ConfigProfileSwitchCmd struct {
	Name string `arg:"" help:"Profile name"`
}

type ConfigProfileCurrentCmd struct{}

type ConfigProfileRemoveCmd struct {
	Name string `arg:"" help:"Profile name"`
}

func (c *ConfigSetKeyCmd) Run(cmdCtx *commandContext) error {
	key, err := readOptionalBody(c.Key, cmdCtx.deps.In)
	if err != nil {
		return exitError(exitGeneral, err)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return exitError(exitGeneral, fmt.Errorf("api key is empty"))
	}
	if err := cmdCtx.deps.Config.SetAPIKey(c.Profile, key, cmdCtx.deps.Now()); err != nil {
		return exitError(exitGeneral, err)
	}
	outputFor(cmdCtx).Infof("Saved API key to %s", cmdCtx.deps.Config.Path)
	return nil
}

func (c *ConfigShowCmd) Run(cmdCtx *commandContext) error {
	file, exists, err := cmdCtx.deps.Config.Load()
	if err != nil {
		return exitError(exitGeneral, err)
	}
	active := config.ActiveProfile(file, os.Getenv(config.EnvProfile))

	out := outputFor(cmdCtx)
	if out.Structured() {
		return out.Print(map[string]any{
			"path":     cmdCtx.deps.Config.Path,
			"exists":   exists,
			"profile":  active,
			"profiles": profileNames(file),
			"env_key":  os.Getenv(config.EnvAPIKey) != "",
		})
	}
	out.Infof("Config file: %s", cmdCtx.deps.Config.Path)
	out.Infof("Active profile: %s", active)
	if os.Getenv(config.EnvAPIKey) != "" {
		out.Infof("%s is set and overrides stored profiles", config.EnvAPIKey)
	}
	for _, name := range profileNames(file) {
		marker := " "
		if name == active {
			marker = "*"
		}
		out.Infof("%s %s", marker, name)
	}
	return nil
}

func (c *ConfigProfileAddCmd) Run(cmdCtx *commandContext) error {
	key, err := readOptionalBody(c.Key, cmdCtx.deps.In)
	if err != nil {
		return exitError(exitGeneral, err)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return exitError(exitGeneral, fmt.Errorf("api key is empty"))
	}
	if err := cmdCtx.deps.Config.SetAPIKey(c.Name, key, cmdCtx.deps.Now()); err != nil {
		return exitError(exitGeneral, err)
	}
	outputFor(cmdCtx).Infof("Added profile %s", c.Name)
	return nil
}

func (c *ConfigProfileListCmd) Run(cmdCtx *commandContext) error {
	file, _, err := cmdCtx.deps.Config.Load()
	if err != nil {
		return exitError(exitGeneral, err)
	}
	names := profileNames(file)

	out := outputFor(cmdCtx)
	if out.Structured() {
		return out.Print(map[string]any{"current": file.Current, "profiles": names})
	}
	for _, name := range names {
		marker := " "
		if name == file.Current {
			marker = "*"
		}
		_, _ = fmt.Fprintf(out.Out, "%s %s\n", marker, name)
	}
	return nil
}

func (c *ConfigProfileSwitchCmd) Run(cmdCtx *commandContext) error {
	if err := cmdCtx.deps.Config.SwitchProfile(c.Name); err != nil {
		return exitError(exitGeneral, err)
	}
	outputFor(cmdCtx).Infof("Switched to profile %s", c.Name)
	return nil
}

func (c *ConfigProfileCurrentCmd) Run(cmdCtx *commandContext) error {
	file, _, err := cmdCtx.deps.Config.Load()
	if err != nil {
		return exitError(exitGeneral, err)
	}
	active := config.ActiveProfile(file, os.Getenv(config.EnvProfile))

	out := outputFor(cmdCtx)
	if out.Structured() {
		return out.Print(map[string]any{"profile": active})
	}
	_, _ = fmt.Fprintln(out.Out, active)
	return nil
}

func (c *ConfigProfileRemoveCmd) Run(cmdCtx *commandContext) error {
	if err := cmdCtx.deps.Config.RemoveProfile(c.Name); err != nil {
		return exitError(exitGeneral, err)
	}
	outputFor(cmdCtx).Infof("Removed profile %s", c.Name)
	return nil
}

func profileNames(file config.File) []string {
	names := make([]string, 0, len(file.Profiles))
	for name := range file.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
