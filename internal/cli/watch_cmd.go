package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/linearcli/linearcli/internal/linear"
)

type WatchCmd struct {
	Issue    string        `arg:"" help:"Issue reference, e.g. ENG-123"`
	Interval time.Duration `help:"Polling interval" default:"30s"`
	Once     bool          `help:"Poll a single time and exit"`
}

// Run polls the issue until the context is cancelled, printing a line
// whenever updatedAt moves. Interrupt (context cancellation) is a clean
// exit, not an error.
func (c *WatchCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	refs, err := extractIssueRefs([]string{c.Issue}, cmdCtx.deps.In)
	if err != nil {
		return exitError(exitGeneral, err)
	}
	if c.Interval <= 0 {
		return exitError(exitGeneral, fmt.Errorf("--interval must be positive"))
	}
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}

	issue, err := client.Issue(ctx, refs[0])
	if err != nil {
		return classified(err)
	}
	out := outputFor(cmdCtx)
	lastSeen := issue.UpdatedAt

	if c.Once {
		return printSnapshot(out, issue)
	}
	out.Infof("Watching %s (every %s)", issue.Identifier, c.Interval)

	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		current, err := client.Issue(ctx, refs[0])
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return classified(err)
		}
		if current.UpdatedAt == lastSeen {
			continue
		}
		lastSeen = current.UpdatedAt
		if err := printSnapshot(out, current); err != nil {
			return err
		}
	}
}

func printSnapshot(out output, issue linear.IssueDetail) error {
	if out.Structured() {
		return out.Print(issue)
	}
	_, _ = fmt.Fprintf(out.Out, "%s  %s  %s  %s\n",
		issue.UpdatedAt, issue.Identifier, issue.State, issue.Title)
	return nil
}
