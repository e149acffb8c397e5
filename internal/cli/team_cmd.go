package cli

import (
	"context"
	"fmt"
)

type TeamsCmd struct {
	List TeamListCmd `cmd:"" default:"withargs" help:"List teams"`
	Get  TeamGetCmd  `cmd:"" help:"View a team and its workflow states"`
}

type TeamListCmd struct{}

type TeamGetCmd struct {
	Team string `arg:"" help:"Team key or ID"`
}

func (c *TeamListCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	teams, err := client.Teams(ctx)
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if out.IDOnly {
		for _, team := range teams {
			_, _ = fmt.Fprintln(out.Out, team.ID)
		}
		return nil
	}
	if out.Structured() {
		return out.Print(teams)
	}
	rows := make([][]string, 0, len(teams))
	for _, team := range teams {
		rows = append(rows, []string{team.Key, team.Name, team.ID})
	}
	return out.PrintTable([]string{"Key", "Name", "ID"}, rows)
}

func (c *TeamGetCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	team, err := client.Team(ctx, c.Team)
	if err != nil {
		return classified(err)
	}
	states, err := client.WorkflowStates(ctx, team.ID)
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if out.IDOnly {
		_, _ = fmt.Fprintln(out.Out, team.ID)
		return nil
	}
	if out.Structured() {
		return out.Print(map[string]any{"team": team, "states": states})
	}
	out.Header(fmt.Sprintf("%s (%s)", team.Name, team.Key))
	rows := make([][]string, 0, len(states))
	for _, state := range states {
		rows = append(rows, []string{state.Name, state.Type, state.ID})
	}
	return out.PrintTable([]string{"State", "Type", "ID"}, rows)
}

