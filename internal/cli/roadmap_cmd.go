package cli

import (
	"context"
	"fmt"
	"strings"
)

type RoadmapsCmd struct {
	List RoadmapListCmd `cmd:"" default:"withargs" help:"List roadmaps"`
	Get  RoadmapGetCmd  `cmd:"" help:"View a roadmap"`
}

type RoadmapListCmd struct {
	Limit int `help:"Maximum number of roadmaps" default:"50"`
}

type RoadmapGetCmd struct {
	Roadmap string `arg:"" help:"Roadmap ID"`
}

func (c *RoadmapListCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	roadmaps, err := client.Roadmaps(ctx, c.Limit)
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if out.IDOnly {
		for _, roadmap := range roadmaps {
			_, _ = fmt.Fprintln(out.Out, roadmap.ID)
		}
		return nil
	}
	if out.Structured() {
		return out.Print(roadmaps)
	}
	rows := make([][]string, 0, len(roadmaps))
	for _, roadmap := range roadmaps {
		rows = append(rows, []string{roadmap.ID, roadmap.Name, strings.Join(roadmap.Projects, ", ")})
	}
	return out.PrintTable([]string{"ID", "Name", "Projects"}, rows)
}

func (c *RoadmapGetCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	roadmap, err := client.Roadmap(ctx, c.Roadmap)
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if out.IDOnly {
		_, _ = fmt.Fprintln(out.Out, roadmap.ID)
		return nil
	}
	if out.Structured() {
		return out.Print(roadmap)
	}
	out.Header(roadmap.Name)
	if roadmap.Description != "" {
		_, _ = fmt.Fprintln(cmdCtx.deps.Out, roadmap.Description)
	}
	for _, project := range roadmap.Projects {
		out.Infof("- %s", project)
	}
	return nil
}
