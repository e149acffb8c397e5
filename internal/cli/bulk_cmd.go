package cli

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/linearcli/linearcli/internal/linear"
)

// bulkConcurrency caps in-flight mutations so a long ref list does not
// trip Linear's rate limiter.
const bulkConcurrency = 10

type BulkCmd struct {
	UpdateState BulkUpdateStateCmd `cmd:"" name:"update-state" help:"Move issues to a workflow state"`
	Assign      BulkAssignCmd      `cmd:"" help:"Assign issues to a user"`
	Unassign    BulkUnassignCmd    `cmd:"" help:"Remove the assignee from issues"`
	Label       BulkLabelCmd       `cmd:"" help:"Add a label to issues"`
}

type bulkRefArgs struct {
	Issues []string `arg:"" help:"Issue references, or '-' to read them from stdin"`
}

type BulkUpdateStateCmd struct {
	bulkRefArgs `embed:""`
	State string `help:"Target workflow state name or ID" required:""`
	Team  string `help:"Team key or ID owning the state" required:""`
}

type BulkAssignCmd struct {
	bulkRefArgs `embed:""`
	Assignee string `help:"User: 'me', an email, or an ID" required:""`
}

type BulkUnassignCmd struct {
	bulkRefArgs `embed:""`
}

type BulkLabelCmd struct {
	bulkRefArgs `embed:""`
	Label string `help:"Label name" required:""`
}

// bulkResult is one issue's outcome, kept in input order.
type bulkResult struct {
	Ref        string `json:"ref"`
	Identifier string `json:"identifier,omitempty"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`

	err error
}

func (c *BulkUpdateStateCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	return runBulk(ctx, cmdCtx, c.Issues, fmt.Sprintf("set state %q", c.State),
		func(ctx context.Context, client linear.API) (map[string]any, error) {
			teamID, err := client.ResolveTeamID(ctx, c.Team)
			if err != nil {
				return nil, err
			}
			stateID, err := client.ResolveStateID(ctx, teamID, c.State)
			if err != nil {
				return nil, err
			}
			return map[string]any{"stateId": stateID}, nil
		})
}

func (c *BulkAssignCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	return runBulk(ctx, cmdCtx, c.Issues, fmt.Sprintf("assign to %s", c.Assignee),
		func(ctx context.Context, client linear.API) (map[string]any, error) {
			userID, err := client.ResolveUserID(ctx, c.Assignee)
			if err != nil {
				return nil, err
			}
			return map[string]any{"assigneeId": userID}, nil
		})
}

func (c *BulkUnassignCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	return runBulk(ctx, cmdCtx, c.Issues, "remove assignee",
		func(ctx context.Context, client linear.API) (map[string]any, error) {
			return map[string]any{"assigneeId": nil}, nil
		})
}

func (c *BulkLabelCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	return runBulk(ctx, cmdCtx, c.Issues, fmt.Sprintf("add label %q", c.Label),
		func(ctx context.Context, client linear.API) (map[string]any, error) {
			ids, err := client.ResolveLabelIDs(ctx, []string{c.Label})
			if err != nil {
				return nil, err
			}
			return map[string]any{"addedLabelIds": ids}, nil
		})
}

// runBulk validates the ref list, resolves the mutation input once, then
// applies it to every issue through a bounded worker pool. Results keep
// input order. A single failure fails the command; the exit code is the
// most severe classification across all failures.
func runBulk(ctx context.Context, cmdCtx *commandContext, args []string, action string,
	resolve func(context.Context, linear.API) (map[string]any, error)) error {

	refs, err := extractIssueRefs(args, cmdCtx.deps.In)
	if err != nil {
		return exitError(exitGeneral, err)
	}
	if len(refs) == 0 {
		return exitError(exitGeneral, fmt.Errorf("no issue references given"))
	}
	refs = uniqueStrings(refs)

	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	input, err := resolve(ctx, client)
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if cmdCtx.global.DryRun {
		for _, ref := range refs {
			out.Infof("dry-run: would %s on %s", action, ref)
		}
		if out.Structured() {
			return out.Print(map[string]any{"dry_run": true, "action": action, "refs": refs})
		}
		return nil
	}

	results := make([]bulkResult, len(refs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(bulkConcurrency)
	for i, ref := range refs {
		i, ref := i, ref
		group.Go(func() error {
			results[i] = applyBulk(groupCtx, client, ref, input)
			return nil
		})
	}
	// Workers record failures in their slot instead of returning them, so
	// one bad issue never cancels the rest.
	_ = group.Wait()

	return reportBulk(out, results)
}

func applyBulk(ctx context.Context, client linear.API, ref string, input map[string]any) bulkResult {
	issueID, err := client.ResolveIssueID(ctx, ref)
	if err != nil {
		return bulkResult{Ref: ref, Error: err.Error(), err: err}
	}
	update := map[string]any{"id": issueID}
	for k, v := range input {
		update[k] = v
	}
	issue, err := client.IssueUpdate(ctx, update)
	if err != nil {
		return bulkResult{Ref: ref, Error: err.Error(), err: err}
	}
	return bulkResult{Ref: ref, Identifier: issue.Identifier, OK: true}
}

func reportBulk(out output, results []bulkResult) error {
	if out.IDOnly {
		for _, result := range results {
			if result.OK {
				_, _ = fmt.Fprintln(out.Out, result.Identifier)
			}
		}
	} else if out.Structured() {
		if err := out.Print(results); err != nil {
			return err
		}
	} else {
		rows := make([][]string, 0, len(results))
		for _, result := range results {
			status := "ok"
			if !result.OK {
				status = "failed: " + result.Error
			}
			rows = append(rows, []string{result.Ref, status})
		}
		if err := out.PrintTable([]string{"Issue", "Result"}, rows); err != nil {
			return err
		}
	}

	code := exitSuccess
	var firstErr error
	for _, result := range results {
		if result.OK {
			continue
		}
		if c := mapErrorToExitCode(result.err); bulkSeverity(c) > bulkSeverity(code) {
			code = c
			firstErr = result.err
		}
	}
	if code == exitSuccess {
		return nil
	}
	return exitError(code, fmt.Errorf("bulk update incomplete: %w", firstErr))
}

// bulkSeverity orders exit codes for aggregation: auth beats rate limiting
// beats not-found beats general failure.
func bulkSeverity(code int) int {
	switch code {
	case exitAuth:
		return 4
	case exitRateLimited:
		return 3
	case exitNotFound:
		return 2
	case exitGeneral:
		return 1
	default:
		return 0
	}
}
