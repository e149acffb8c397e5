package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/linearcli/linearcli/internal/linear"
)

type ProjectsCmd struct {
	List   ProjectListCmd   `cmd:"" help:"List projects"`
	Get    ProjectGetCmd    `cmd:"" help:"View project details"`
	Create ProjectCreateCmd `cmd:"" help:"Create a project"`
	Update ProjectUpdateCmd `cmd:"" help:"Update a project"`
	Delete ProjectDeleteCmd `cmd:"" help:"Delete a project"`
}

type ProjectListCmd struct {
	Archived bool   `help:"Include archived projects"`
	Limit    int    `help:"Maximum number of projects" default:"50"`
	After    string `help:"Pagination cursor"`
}

type ProjectGetCmd struct {
	Project string `arg:"" help:"Project name or ID"`
}

type ProjectCreateCmd struct {
	Name        string `arg:"" help:"Project name"`
	Team        string `help:"Team key or ID" required:""`
	Description string `help:"Project description or '-' for stdin"`
	TargetDate  string `name:"target-date" help:"Target date (YYYY-MM-DD)"`
}

type ProjectUpdateCmd struct {
	Project     string `arg:"" help:"Project name or ID"`
	Name        string `help:"New project name"`
	Description string `help:"Project description or '-' for stdin"`
	TargetDate  string `name:"target-date" help:"Target date (YYYY-MM-DD)"`
	State       string `help:"Project state (planned, started, completed, canceled)"`
}

type ProjectDeleteCmd struct {
	Project string `arg:"" help:"Project name or ID"`
	Force   bool   `help:"Skip confirmation"`
}

func (c *ProjectListCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	page, err := client.Projects(ctx, c.Archived, c.Limit, c.After)
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if out.IDOnly {
		for _, project := range page.Nodes {
			_, _ = fmt.Fprintln(out.Out, project.ID)
		}
		return nil
	}
	if out.Structured() {
		return out.Print(page.Nodes)
	}
	rows := make([][]string, 0, len(page.Nodes))
	for _, project := range page.Nodes {
		rows = append(rows, []string{
			project.ID, project.Name, project.State,
			strconv.Itoa(project.Progress) + "%", project.TargetDate,
		})
	}
	return out.PrintTable([]string{"ID", "Name", "State", "Progress", "Target"}, rows)
}

func (c *ProjectGetCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	project, err := client.Project(ctx, c.Project)
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if out.IDOnly {
		_, _ = fmt.Fprintln(out.Out, project.ID)
		return nil
	}
	if out.Structured() {
		return out.Print(project)
	}
	rows := [][]string{{project.ID, project.Name, project.State, strconv.Itoa(project.Progress) + "%", project.TargetDate}}
	if err := out.PrintTable([]string{"ID", "Name", "State", "Progress", "Target"}, rows); err != nil {
		return err
	}
	if project.URL != "" {
		_, _ = fmt.Fprintf(cmdCtx.deps.Out, "\nURL: %s\n", project.URL)
	}
	if project.Description != "" {
		_, _ = fmt.Fprintf(cmdCtx.deps.Out, "\nDescription:\n%s\n", project.Description)
	}
	return nil
}

func (c *ProjectCreateCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	teamID, err := client.ResolveTeamID(ctx, c.Team)
	if err != nil {
		return classified(err)
	}

	input := map[string]any{
		"name":    c.Name,
		"teamIds": []string{teamID},
	}
	description, err := readOptionalBody(c.Description, cmdCtx.deps.In)
	if err != nil {
		return exitError(exitGeneral, err)
	}
	if description != "" {
		input["description"] = description
	}
	if c.TargetDate != "" {
		input["targetDate"] = c.TargetDate
	}

	out := outputFor(cmdCtx)
	if cmdCtx.global.DryRun {
		out.Infof("dry-run: would create project %q", c.Name)
		if out.Structured() {
			return out.Print(map[string]any{"dry_run": true, "input": input})
		}
		return nil
	}

	project, err := client.ProjectCreate(ctx, input)
	if err != nil {
		return classified(err)
	}
	return printProject(out, &project)
}

func (c *ProjectUpdateCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	projectID, err := client.ResolveProjectID(ctx, c.Project)
	if err != nil {
		return classified(err)
	}

	input := map[string]any{}
	if c.Name != "" {
		input["name"] = c.Name
	}
	description, err := readOptionalBody(c.Description, cmdCtx.deps.In)
	if err != nil {
		return exitError(exitGeneral, err)
	}
	if description != "" {
		input["description"] = description
	}
	if c.TargetDate != "" {
		input["targetDate"] = c.TargetDate
	}
	if c.State != "" {
		input["state"] = c.State
	}
	if len(input) == 0 {
		return exitError(exitGeneral, fmt.Errorf("nothing to update"))
	}

	out := outputFor(cmdCtx)
	if cmdCtx.global.DryRun {
		out.Infof("dry-run: would update project %s", c.Project)
		return nil
	}

	project, err := client.ProjectUpdate(ctx, projectID, input)
	if err != nil {
		return classified(err)
	}
	return printProject(out, &project)
}

func (c *ProjectDeleteCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	projectID, err := client.ResolveProjectID(ctx, c.Project)
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if cmdCtx.global.DryRun {
		out.Infof("dry-run: would delete project %s", c.Project)
		return nil
	}
	if !c.Force {
		return exitError(exitGeneral, fmt.Errorf("refusing to delete without --force"))
	}
	if err := client.ProjectDelete(ctx, projectID); err != nil {
		return classified(err)
	}
	if out.Structured() {
		return out.Print(map[string]any{"deleted": true, "id": projectID})
	}
	out.Infof("Deleted project %s", c.Project)
	return nil
}

func printProject(out output, project *linear.Project) error {
	if out.IDOnly {
		_, _ = fmt.Fprintln(out.Out, project.ID)
		return nil
	}
	if out.Structured() {
		return out.Print(project)
	}
	out.Infof("%s (%s)", project.Name, project.ID)
	if project.URL != "" {
		out.Infof("%s", project.URL)
	}
	return nil
}
