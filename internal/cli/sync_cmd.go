package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/linearcli/linearcli/internal/linear"
)

type SyncCmd struct {
	Status SyncStatusCmd `cmd:"" default:"withargs" help:"Compare local folders with projects"`
	Push   SyncPushCmd   `cmd:"" help:"Create projects for unmatched folders"`
}

type SyncStatusCmd struct {
	Dir string `help:"Directory whose subdirectories map to projects" default:"."`
}

type SyncPushCmd struct {
	Dir  string `help:"Directory whose subdirectories map to projects" default:"."`
	Team string `help:"Team key or ID for created projects" required:""`
}

// syncReport pairs local folder names against remote project names.
type syncReport struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"` // folders with no project
	Extra   []string `json:"extra"`   // projects with no folder
}

func (c *SyncStatusCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	report, err := buildSyncReport(ctx, cmdCtx, c.Dir)
	if err != nil {
		return err
	}
	out := outputFor(cmdCtx)
	if out.Structured() {
		return out.Print(report)
	}
	out.Header(fmt.Sprintf("Sync status for %s", c.Dir))
	for _, name := range report.Matched {
		out.Infof("  ok      %s", name)
	}
	for _, name := range report.Missing {
		out.Infof("  missing %s", name)
	}
	for _, name := range report.Extra {
		out.Infof("  extra   %s", name)
	}
	return nil
}

func (c *SyncPushCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	report, err := buildSyncReport(ctx, cmdCtx, c.Dir)
	if err != nil {
		return err
	}
	out := outputFor(cmdCtx)
	if len(report.Missing) == 0 {
		out.Infof("Nothing to push")
		return nil
	}

	if cmdCtx.global.DryRun {
		for _, name := range report.Missing {
			out.Infof("dry-run: would create project %q", name)
		}
		if out.Structured() {
			return out.Print(map[string]any{"dry_run": true, "create": report.Missing})
		}
		return nil
	}

	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	teamID, err := client.ResolveTeamID(ctx, c.Team)
	if err != nil {
		return classified(err)
	}

	created := make([]linear.Project, 0, len(report.Missing))
	for _, name := range report.Missing {
		project, err := client.ProjectCreate(ctx, map[string]any{
			"name":    name,
			"teamIds": []string{teamID},
		})
		if err != nil {
			return classified(err)
		}
		created = append(created, project)
		out.Infof("Created project %s (%s)", project.Name, project.ID)
	}
	if out.Structured() {
		return out.Print(created)
	}
	return nil
}

func buildSyncReport(ctx context.Context, cmdCtx *commandContext, dir string) (syncReport, error) {
	folders, err := localFolders(dir)
	if err != nil {
		return syncReport{}, exitError(exitGeneral, err)
	}

	client, err := cmdCtx.apiClient()
	if err != nil {
		return syncReport{}, exitError(exitAuth, err)
	}
	var projects []linear.Project
	cursor := ""
	for {
		page, err := client.Projects(ctx, false, 50, cursor)
		if err != nil {
			return syncReport{}, classified(err)
		}
		projects = append(projects, page.Nodes...)
		if !page.PageInfo.HasNextPage || page.PageInfo.EndCursor == "" {
			break
		}
		cursor = page.PageInfo.EndCursor
	}

	remote := make(map[string]bool, len(projects))
	for _, project := range projects {
		remote[strings.ToLower(project.Name)] = true
	}
	local := make(map[string]bool, len(folders))
	for _, folder := range folders {
		local[strings.ToLower(folder)] = true
	}

	var report syncReport
	for _, folder := range folders {
		if remote[strings.ToLower(folder)] {
			report.Matched = append(report.Matched, folder)
		} else {
			report.Missing = append(report.Missing, folder)
		}
	}
	for _, project := range projects {
		if !local[strings.ToLower(project.Name)] {
			report.Extra = append(report.Extra, project.Name)
		}
	}
	sort.Strings(report.Matched)
	sort.Strings(report.Missing)
	sort.Strings(report.Extra)
	return report, nil
}

// localFolders lists immediate subdirectories, skipping hidden ones.
func localFolders(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var folders []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		folders = append(folders, entry.Name())
	}
	return folders, nil
}
