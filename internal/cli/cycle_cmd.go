package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/linearcli/linearcli/internal/linear"
)

type CyclesCmd struct {
	List    CycleListCmd    `cmd:"" default:"withargs" help:"List cycles"`
	Current CycleCurrentCmd `cmd:"" help:"View the active cycle"`
}

type CycleListCmd struct {
	Team  string `help:"Team key or ID" required:""`
	Limit int    `help:"Maximum number of cycles" default:"50"`
	After string `help:"Pagination cursor"`
}

type CycleCurrentCmd struct {
	Team string `help:"Team key or ID" required:""`
}

func (c *CycleListCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	teamID, err := client.ResolveTeamID(ctx, c.Team)
	if err != nil {
		return classified(err)
	}
	page, err := client.Cycles(ctx, teamID, false, c.Limit, c.After)
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if out.IDOnly {
		for _, cycle := range page.Nodes {
			_, _ = fmt.Fprintln(out.Out, cycle.ID)
		}
		return nil
	}
	if out.Structured() {
		return out.Print(page.Nodes)
	}
	rows := make([][]string, 0, len(page.Nodes))
	for _, cycle := range page.Nodes {
		rows = append(rows, cycleRow(cycle))
	}
	return out.PrintTable([]string{"Number", "Name", "Starts", "Ends", "Active"}, rows)
}

func (c *CycleCurrentCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	teamID, err := client.ResolveTeamID(ctx, c.Team)
	if err != nil {
		return classified(err)
	}
	id, err := client.ResolveCycleID(ctx, teamID, "current")
	if err != nil {
		return classified(err)
	}
	cycle, err := client.Cycle(ctx, id)
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if out.IDOnly {
		_, _ = fmt.Fprintln(out.Out, cycle.ID)
		return nil
	}
	if out.Structured() {
		return out.Print(cycle)
	}
	return out.PrintTable([]string{"Number", "Name", "Starts", "Ends", "Active"}, [][]string{cycleRow(cycle)})
}

func cycleRow(cycle linear.Cycle) []string {
	active := ""
	if cycle.IsActive {
		active = "yes"
	}
	return []string{strconv.Itoa(cycle.Number), cycle.Name, cycle.StartsAt, cycle.EndsAt, active}
}
