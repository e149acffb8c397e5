package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/linearcli/linearcli/internal/linear"
)

type MetricsCmd struct {
	Cycle    MetricsCycleCmd    `cmd:"" help:"Scope and completion for the active cycle"`
	Velocity MetricsVelocityCmd `cmd:"" help:"Average completed issues over recent cycles"`
}

type MetricsCycleCmd struct {
	Team string `help:"Team key or ID" required:""`
}

type MetricsVelocityCmd struct {
	Team   string `help:"Team key or ID" required:""`
	Cycles int    `help:"Number of finished cycles to average" default:"3"`
}

type cycleMetrics struct {
	Cycle     string `json:"cycle"`
	Scope     int    `json:"scope"`
	Completed int    `json:"completed"`
}

func (c *MetricsCycleCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	teamID, err := client.ResolveTeamID(ctx, c.Team)
	if err != nil {
		return classified(err)
	}
	cycleID, err := client.ResolveCycleID(ctx, teamID, "current")
	if err != nil {
		return classified(err)
	}
	cycle, err := client.Cycle(ctx, cycleID)
	if err != nil {
		return classified(err)
	}
	metrics, err := measureCycle(ctx, client, teamID, cycle)
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if out.Structured() {
		return out.Print(metrics)
	}
	percent := 0
	if metrics.Scope > 0 {
		percent = metrics.Completed * 100 / metrics.Scope
	}
	out.Header(fmt.Sprintf("Cycle %s", metrics.Cycle))
	out.Infof("Scope:     %d issues", metrics.Scope)
	out.Infof("Completed: %d issues (%d%%)", metrics.Completed, percent)
	return nil
}

func (c *MetricsVelocityCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	teamID, err := client.ResolveTeamID(ctx, c.Team)
	if err != nil {
		return classified(err)
	}
	page, err := client.Cycles(ctx, teamID, false, 50, "")
	if err != nil {
		return classified(err)
	}

	finished := finishedCycles(page.Nodes, cmdCtx.deps.Now())
	if len(finished) > c.Cycles {
		finished = finished[:c.Cycles]
	}
	if len(finished) == 0 {
		return exitError(exitGeneral, fmt.Errorf("no finished cycles for team %s", c.Team))
	}

	perCycle := make([]cycleMetrics, 0, len(finished))
	total := 0
	for _, cycle := range finished {
		metrics, err := measureCycle(ctx, client, teamID, cycle)
		if err != nil {
			return classified(err)
		}
		perCycle = append(perCycle, metrics)
		total += metrics.Completed
	}
	average := float64(total) / float64(len(perCycle))

	out := outputFor(cmdCtx)
	if out.Structured() {
		return out.Print(map[string]any{
			"cycles":   perCycle,
			"velocity": average,
		})
	}
	rows := make([][]string, 0, len(perCycle))
	for _, metrics := range perCycle {
		rows = append(rows, []string{metrics.Cycle, fmt.Sprintf("%d/%d", metrics.Completed, metrics.Scope)})
	}
	if err := out.PrintTable([]string{"Cycle", "Completed/Scope"}, rows); err != nil {
		return err
	}
	out.Infof("\nVelocity: %.1f issues per cycle", average)
	return nil
}

func measureCycle(ctx context.Context, client linear.API, teamID string, cycle linear.Cycle) (cycleMetrics, error) {
	base := linear.IssueFilter{TeamID: teamID, CycleID: cycle.ID}
	scope, err := collectIssues(ctx, client, base, 0, "", true)
	if err != nil {
		return cycleMetrics{}, err
	}

	done := base
	done.StateType = "completed"
	completed, err := collectIssues(ctx, client, done, 0, "", true)
	if err != nil {
		return cycleMetrics{}, err
	}

	name := cycle.Name
	if name == "" {
		name = fmt.Sprintf("#%d", cycle.Number)
	}
	return cycleMetrics{Cycle: name, Scope: len(scope), Completed: len(completed)}, nil
}

// finishedCycles returns cycles whose end date has passed, most recent first.
func finishedCycles(cycles []linear.Cycle, now time.Time) []linear.Cycle {
	var finished []linear.Cycle
	for _, cycle := range cycles {
		ends, err := time.Parse(time.RFC3339, cycle.EndsAt)
		if err != nil {
			continue
		}
		if ends.Before(now) {
			finished = append(finished, cycle)
		}
	}
	sort.Slice(finished, func(i, j int) bool {
		return finished[i].EndsAt > finished[j].EndsAt
	})
	return finished
}
