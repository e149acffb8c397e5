package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/linearcli/linearcli/internal/config"
)

type DoctorCmd struct {
	CheckAPI bool `name:"check-api" help:"Also verify the credential with a viewer query"`
}

type doctorReport struct {
	ConfigPath   string `json:"config_path"`
	ConfigExists bool   `json:"config_exists"`
	Profile      string `json:"profile"`
	EnvKeySet    bool   `json:"env_key_set"`
	KeySource    string `json:"key_source,omitempty"`
	APIReachable *bool  `json:"api_reachable,omitempty"`
	User         string `json:"user,omitempty"`
	Problem      string `json:"problem,omitempty"`
}

func (c *DoctorCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	report := doctorReport{
		ConfigPath: cmdCtx.deps.Config.Path,
		EnvKeySet:  os.Getenv(config.EnvAPIKey) != "",
	}

	file, exists, err := cmdCtx.deps.Config.Load()
	if err != nil {
		report.Problem = err.Error()
	} else {
		report.ConfigExists = exists
		report.Profile = config.ActiveProfile(file, os.Getenv(config.EnvProfile))
	}

	if _, source, err := cmdCtx.resolveAPIKey(); err == nil {
		report.KeySource = source
	} else if report.Problem == "" {
		report.Problem = err.Error()
	}

	if c.CheckAPI && report.KeySource != "" {
		reachable := false
		client, err := cmdCtx.apiClient()
		if err == nil {
			if me, err := client.Me(ctx); err == nil {
				reachable = true
				report.User = me.Name
			} else if report.Problem == "" {
				report.Problem = err.Error()
			}
		}
		report.APIReachable = &reachable
	}

	out := outputFor(cmdCtx)
	if out.Structured() {
		if err := out.Print(report); err != nil {
			return err
		}
	} else {
		out.Infof("Config file:    %s (exists: %v)", report.ConfigPath, report.ConfigExists)
		out.Infof("Active profile: %s", report.Profile)
		out.Infof("%s set:  %v", config.EnvAPIKey, report.EnvKeySet)
		if report.KeySource != "" {
			out.Infof("Credential:     %s", report.KeySource)
		}
		if report.APIReachable != nil {
			out.Infof("API reachable:  %v", *report.APIReachable)
		}
		if report.User != "" {
			out.Infof("User:           %s", report.User)
		}
		if report.Problem != "" {
			out.Infof("Problem:        %s", report.Problem)
		}
	}

	if report.Problem != "" {
		return exitError(exitGeneral, fmt.Errorf("doctor found a problem: %s", report.Problem))
	}
	return nil
}
