package cli

import (
	"context"
	"fmt"
)

type HistoryCmd struct {
	Issue HistoryIssueCmd `cmd:"" default:"withargs" help:"Show an issue's change history"`
}

type HistoryIssueCmd struct {
	Issue string `arg:"" help:"Issue reference, e.g. ENG-123"`
	Limit int    `help:"Maximum number of entries" default:"50"`
}

func (c *HistoryIssueCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	refs, err := extractIssueRefs([]string{c.Issue}, cmdCtx.deps.In)
	if err != nil {
		return exitError(exitGeneral, err)
	}
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	issueID, err := client.ResolveIssueID(ctx, refs[0])
	if err != nil {
		return classified(err)
	}
	entries, err := client.IssueHistory(ctx, issueID, c.Limit)
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if out.Structured() {
		return out.Print(entries)
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		change := ""
		if entry.FromState != "" || entry.ToState != "" {
			change = fmt.Sprintf("%s -> %s", entry.FromState, entry.ToState)
		}
		rows = append(rows, []string{entry.CreatedAt, entry.Actor, change})
	}
	return out.PrintTable([]string{"When", "Actor", "Change"}, rows)
}
