package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/linearcli/linearcli/internal/linear"
)

type ExportCmd struct {
	Csv      ExportCsvCmd      `cmd:"" help:"Export issues as CSV"`
	Markdown ExportMarkdownCmd `cmd:"" help:"Export issues as a Markdown table"`
}

type exportFlags struct {
	Team     string `help:"Team key or ID"`
	Assignee string `help:"Assignee (me, id, or email)"`
	State    string `help:"Workflow state name or ID"`
	Labels   string `name:"label" help:"Comma-separated label names or IDs"`
	Project  string `help:"Project name or ID"`
	Cycle    string `help:"Cycle ID or 'current'"`
	Search   string `help:"Search issue titles"`
	Priority int    `help:"Priority (0-4)" default:"-1"`
	Limit    int    `help:"Maximum number of issues" default:"250"`
	All      bool   `help:"Fetch every page"`
	File     string `help:"Write to a file instead of stdout"`
}

func (f exportFlags) filterFlags() listFilterFlags {
	return listFilterFlags{
		Team:     f.Team,
		Assignee: f.Assignee,
		State:    f.State,
		Labels:   f.Labels,
		Project:  f.Project,
		Cycle:    f.Cycle,
		Search:   f.Search,
		Priority: f.Priority,
	}
}

type ExportCsvCmd struct {
	exportFlags `embed:""`
}

type ExportMarkdownCmd struct {
	exportFlags `embed:""`
}

func (c *ExportCsvCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	issues, w, closeFn, err := exportIssues(ctx, cmdCtx, c.exportFlags)
	if err != nil {
		return err
	}
	defer closeFn()

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader()); err != nil {
		return exitError(exitGeneral, err)
	}
	for _, issue := range issues {
		if err := writer.Write(exportRow(issue)); err != nil {
			return exitError(exitGeneral, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return exitError(exitGeneral, err)
	}
	return nil
}

func (c *ExportMarkdownCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	issues, w, closeFn, err := exportIssues(ctx, cmdCtx, c.exportFlags)
	if err != nil {
		return err
	}
	defer closeFn()

	header := exportHeader()
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(header, " | ")); err != nil {
		return exitError(exitGeneral, err)
	}
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return exitError(exitGeneral, err)
	}
	for _, issue := range issues {
		cols := exportRow(issue)
		for i, col := range cols {
			cols[i] = strings.ReplaceAll(col, "|", "\\|")
		}
		if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(cols, " | ")); err != nil {
			return exitError(exitGeneral, err)
		}
	}
	return nil
}

func exportIssues(ctx context.Context, cmdCtx *commandContext, flags exportFlags) ([]linear.IssueSummary, io.Writer, func(), error) {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return nil, nil, nil, exitError(exitAuth, err)
	}
	filter, err := buildListFilter(ctx, client, flags.filterFlags())
	if err != nil {
		return nil, nil, nil, classified(err)
	}
	issues, err := collectIssues(ctx, client, filter, flags.Limit, "", flags.All)
	if err != nil {
		return nil, nil, nil, classified(err)
	}

	out := outputFor(cmdCtx)
	if out.Sort != "" {
		sortIssues(issues, out.Sort, out.Descending)
	}

	w := io.Writer(cmdCtx.deps.Out)
	closeFn := func() {}
	if flags.File != "" {
		f, err := os.Create(flags.File)
		if err != nil {
			return nil, nil, nil, exitError(exitGeneral, fmt.Errorf("create %s: %w", flags.File, err))
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}
	return issues, w, closeFn, nil
}

func exportHeader() []string {
	return []string{"identifier", "title", "state", "assignee", "priority", "team", "url"}
}

func exportRow(issue linear.IssueSummary) []string {
	return []string{
		issue.Identifier, issue.Title, issue.State, issue.Assignee,
		strconv.Itoa(issue.Priority), issue.TeamKey, issue.URL,
	}
}

// sortIssues orders export rows by one of the exported columns.
func sortIssues(issues []linear.IssueSummary, field string, descending bool) {
	key := func(issue linear.IssueSummary) string {
		switch field {
		case "identifier":
			return issue.Identifier
		case "title":
			return issue.Title
		case "state":
			return issue.State
		case "assignee":
			return issue.Assignee
		case "priority":
			return strconv.Itoa(issue.Priority)
		case "team", "team_key":
			return issue.TeamKey
		case "updated_at":
			return issue.UpdatedAt
		default:
			return issue.Identifier
		}
	}
	sort.SliceStable(issues, func(i, j int) bool {
		less := strings.ToLower(key(issues[i])) < strings.ToLower(key(issues[j]))
		if descending {
			return !less
		}
		return less
	})
}
