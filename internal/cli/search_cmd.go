package cli

import (
	"context"
	"fmt"
	"strings"
)

type SearchCmd struct {
	Issues   SearchIssuesCmd   `cmd:"" default:"withargs" help:"Full-text search over issues"`
	Projects SearchProjectsCmd `cmd:"" help:"Full-text search over projects"`
}

type SearchIssuesCmd struct {
	Query []string `arg:"" help:"Search terms"`
	Limit int      `help:"Maximum number of results" default:"25"`
}

type SearchProjectsCmd struct {
	Query []string `arg:"" help:"Search terms"`
	Limit int      `help:"Maximum number of results" default:"25"`
}

func (c *SearchIssuesCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	term, err := searchTerm(c.Query)
	if err != nil {
		return err
	}
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	issues, err := client.SearchIssues(ctx, term, c.Limit)
	if err != nil {
		return classified(err)
	}
	return printIssueList(outputFor(cmdCtx), issues)
}

func (c *SearchProjectsCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	term, err := searchTerm(c.Query)
	if err != nil {
		return err
	}
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	projects, err := client.SearchProjects(ctx, term, c.Limit)
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if out.IDOnly {
		for _, project := range projects {
			_, _ = fmt.Fprintln(out.Out, project.ID)
		}
		return nil
	}
	if out.Structured() {
		return out.Print(projects)
	}
	rows := make([][]string, 0, len(projects))
	for _, project := range projects {
		rows = append(rows, []string{project.ID, project.Name, project.State})
	}
	return out.PrintTable([]string{"ID", "Name", "State"}, rows)
}

func searchTerm(query []string) (string, error) {
	term := strings.TrimSpace(strings.Join(query, " "))
	if term == "" {
		return "", exitError(exitGeneral, fmt.Errorf("search term is empty"))
	}
	return term, nil
}
