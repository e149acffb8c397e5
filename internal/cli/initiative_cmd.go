package cli

import (
	"context"
	"fmt"
)

type InitiativesCmd struct {
	List InitiativeListCmd `cmd:"" default:"withargs" help:"List initiatives"`
	Get  InitiativeGetCmd  `cmd:"" help:"View an initiative"`
}

type InitiativeListCmd struct {
	Limit int `help:"Maximum number of initiatives" default:"50"`
}

type InitiativeGetCmd struct {
	Initiative string `arg:"" help:"Initiative ID"`
}

func (c *InitiativeListCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	initiatives, err := client.Initiatives(ctx, c.Limit)
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if out.IDOnly {
		for _, initiative := range initiatives {
			_, _ = fmt.Fprintln(out.Out, initiative.ID)
		}
		return nil
	}
	if out.Structured() {
		return out.Print(initiatives)
	}
	rows := make([][]string, 0, len(initiatives))
	for _, initiative := range initiatives {
		rows = append(rows, []string{initiative.ID, initiative.Name, initiative.Status, initiative.TargetDate})
	}
	return out.PrintTable([]string{"ID", "Name", "Status", "Target"}, rows)
}

func (c *InitiativeGetCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	initiative, err := client.Initiative(ctx, c.Initiative)
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if out.IDOnly {
		_, _ = fmt.Fprintln(out.Out, initiative.ID)
		return nil
	}
	if out.Structured() {
		return out.Print(initiative)
	}
	out.Header(initiative.Name)
	if initiative.Status != "" {
		out.Infof("Status: %s", initiative.Status)
	}
	if initiative.TargetDate != "" {
		out.Infof("Target: %s", initiative.TargetDate)
	}
	if initiative.Description != "" {
		_, _ = fmt.Fprintf(cmdCtx.deps.Out, "\n%s\n", initiative.Description)
	}
	return nil
}
