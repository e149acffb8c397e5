package cli

import (
	"context"
	"fmt"

	"github.com/linearcli/linearcli/internal/linear"
)

type TriageCmd struct {
	List   TriageListCmd   `cmd:"" default:"withargs" help:"List issues waiting in triage"`
	Claim  TriageClaimCmd  `cmd:"" help:"Assign a triage issue to yourself and start it"`
	Snooze TriageSnoozeCmd `cmd:"" help:"Push a triage issue's due date out"`
}

type TriageListCmd struct {
	Team  string `help:"Team key or ID" required:""`
	Limit int    `help:"Maximum number of issues" default:"50"`
}

type TriageClaimCmd struct {
	Issue string `arg:"" help:"Issue reference, e.g. ENG-123"`
}

type TriageSnoozeCmd struct {
	Issue string `arg:"" help:"Issue reference, e.g. ENG-123"`
	Days  int    `help:"Days to snooze for" default:"7"`
}

func (c *TriageListCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	teamID, err := client.ResolveTeamID(ctx, c.Team)
	if err != nil {
		return classified(err)
	}
	filter := linear.IssueFilter{TeamID: teamID, StateType: "triage"}
	issues, err := collectIssues(ctx, client, filter, c.Limit, "", false)
	if err != nil {
		return classified(err)
	}
	return printIssueList(outputFor(cmdCtx), issues)
}

func (c *TriageClaimCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	refs, err := extractIssueRefs([]string{c.Issue}, cmdCtx.deps.In)
	if err != nil {
		return exitError(exitGeneral, err)
	}
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	issue, err := client.Issue(ctx, refs[0])
	if err != nil {
		return classified(err)
	}
	me, err := client.Me(ctx)
	if err != nil {
		return classified(err)
	}
	stateID, err := startedStateID(ctx, client, issue.TeamID)
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if cmdCtx.global.DryRun {
		out.Infof("dry-run: would claim %s for %s", refs[0], me.Name)
		return nil
	}

	updated, err := client.IssueUpdate(ctx, map[string]any{
		"id":         issue.ID,
		"assigneeId": me.ID,
		"stateId":    stateID,
	})
	if err != nil {
		return classified(err)
	}
	return printIssueSummary(out, updated)
}

func (c *TriageSnoozeCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	refs, err := extractIssueRefs([]string{c.Issue}, cmdCtx.deps.In)
	if err != nil {
		return exitError(exitGeneral, err)
	}
	if c.Days <= 0 {
		return exitError(exitGeneral, fmt.Errorf("--days must be positive"))
	}
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	issueID, err := client.ResolveIssueID(ctx, refs[0])
	if err != nil {
		return classified(err)
	}
	due := cmdCtx.deps.Now().AddDate(0, 0, c.Days).Format("2006-01-02")

	out := outputFor(cmdCtx)
	if cmdCtx.global.DryRun {
		out.Infof("dry-run: would snooze %s until %s", refs[0], due)
		return nil
	}

	updated, err := client.IssueUpdate(ctx, map[string]any{"id": issueID, "dueDate": due})
	if err != nil {
		return classified(err)
	}
	if out.Structured() || out.IDOnly {
		return printIssueSummary(out, updated)
	}
	out.Infof("Snoozed %s until %s", updated.Identifier, due)
	return nil
}

// startedStateID finds the team's first "started" workflow state.
func startedStateID(ctx context.Context, client linear.API, teamID string) (string, error) {
	states, err := client.WorkflowStates(ctx, teamID)
	if err != nil {
		return "", err
	}
	for _, state := range states {
		if state.Type == "started" {
			return state.ID, nil
		}
	}
	return "", fmt.Errorf("no started state for team: %w", linear.ErrNotFound)
}
