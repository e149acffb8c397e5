package cli

import (
	"context"
	"fmt"
)

type LabelsCmd struct {
	List   LabelListCmd   `cmd:"" default:"withargs" help:"List labels"`
	Create LabelCreateCmd `cmd:"" help:"Create a label"`
	Delete LabelDeleteCmd `cmd:"" help:"Delete a label"`
}

type LabelListCmd struct {
	Team  string `help:"Restrict to one team's labels"`
	Limit int    `help:"Maximum number of labels" default:"100"`
}

type LabelCreateCmd struct {
	Name  string `arg:"" help:"Label name"`
	Team  string `help:"Team key or ID (omit for a workspace label)"`
	Color string `help:"Hex color, e.g. #ff5500"`
}

type LabelDeleteCmd struct {
	Label string `arg:"" help:"Label name or ID"`
	Force bool   `help:"Skip confirmation"`
}

func (c *LabelListCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	teamID := ""
	if c.Team != "" {
		teamID, err = client.ResolveTeamID(ctx, c.Team)
		if err != nil {
			return classified(err)
		}
	}
	labels, err := client.Labels(ctx, teamID, c.Limit)
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if out.IDOnly {
		for _, label := range labels {
			_, _ = fmt.Fprintln(out.Out, label.ID)
		}
		return nil
	}
	if out.Structured() {
		return out.Print(labels)
	}
	rows := make([][]string, 0, len(labels))
	for _, label := range labels {
		rows = append(rows, []string{label.Name, label.Color, label.ID})
	}
	return out.PrintTable([]string{"Name", "Color", "ID"}, rows)
}

func (c *LabelCreateCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}

	input := map[string]any{"name": c.Name}
	if c.Team != "" {
		teamID, err := client.ResolveTeamID(ctx, c.Team)
		if err != nil {
			return classified(err)
		}
		input["teamId"] = teamID
	}
	if c.Color != "" {
		input["color"] = c.Color
	}

	out := outputFor(cmdCtx)
	if cmdCtx.global.DryRun {
		out.Infof("dry-run: would create label %q", c.Name)
		return nil
	}

	label, err := client.LabelCreate(ctx, input)
	if err != nil {
		return classified(err)
	}
	if out.IDOnly {
		_, _ = fmt.Fprintln(out.Out, label.ID)
		return nil
	}
	if out.Structured() {
		return out.Print(label)
	}
	out.Infof("Created label %s (%s)", label.Name, label.ID)
	return nil
}

func (c *LabelDeleteCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	id := c.Label
	if !looksLikeUUID(c.Label) {
		ids, err := client.ResolveLabelIDs(ctx, []string{c.Label})
		if err != nil {
			return classified(err)
		}
		id = ids[0]
	}

	out := outputFor(cmdCtx)
	if cmdCtx.global.DryRun {
		out.Infof("dry-run: would delete label %s", c.Label)
		return nil
	}
	if !c.Force {
		return exitError(exitGeneral, fmt.Errorf("refusing to delete without --force"))
	}
	if err := client.LabelDelete(ctx, id); err != nil {
		return classified(err)
	}
	if out.Structured() {
		return out.Print(map[string]any{"deleted": true, "id": id})
	}
	out.Infof("Deleted label %s", c.Label)
	return nil
}
