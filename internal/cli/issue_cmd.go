package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/linearcli/linearcli/internal/linear"
)

type IssuesCmd struct {
	List   IssueListCmd   `cmd:"" help:"List issues"`
	Get    IssueGetCmd    `cmd:"" help:"View issue details"`
	Create IssueCreateCmd `cmd:"" help:"Create an issue"`
	Update IssueUpdateCmd `cmd:"" help:"Update an issue"`
	Close  IssueCloseCmd  `cmd:"" help:"Close an issue"`
	Reopen IssueReopenCmd `cmd:"" help:"Reopen an issue"`
}

type IssueListCmd struct {
	Team     string `help:"Team key or ID"`
	Assignee string `help:"Assignee (me, id, or email)"`
	State    string `help:"Workflow state name or ID"`
	Labels   string `name:"label" help:"Comma-separated label names or IDs"`
	Project  string `help:"Project name or ID"`
	Cycle    string `help:"Cycle ID or 'current'"`
	Search   string `help:"Search issue titles"`
	Priority int    `help:"Priority (0-4)" default:"-1"`
	Limit    int    `help:"Maximum number of issues" default:"50"`
	After    string `help:"Pagination cursor"`
	All      bool   `help:"Fetch every page"`
}

type IssueGetCmd struct {
	IssueRef      string `arg:"" name:"issue-ref" help:"Issue reference (e.g. LIN-123)"`
	Comments      bool   `help:"Include comments"`
	CommentsLimit int    `name:"comments-limit" help:"Maximum number of comments" default:"20"`
}

type IssueCreateCmd struct {
	Team        string `help:"Team key or ID" required:""`
	Title       string `help:"Issue title" required:""`
	Description string `help:"Issue description or '-' for stdin"`
	Assignee    string `help:"Assignee (me, id, or email)"`
	State       string `help:"Workflow state name or ID"`
	Priority    int    `help:"Priority (0-4)" default:"-1"`
	Project     string `help:"Project name or ID"`
	Cycle       string `help:"Cycle ID or 'current'"`
	Labels      string `help:"Comma-separated label names or IDs"`
}

type IssueUpdateCmd struct {
	IssueRef    string `arg:"" name:"issue-ref" help:"Issue reference"`
	Team        string `help:"Team key or ID"`
	Title       string `help:"Issue title"`
	Description string `help:"Issue description or '-' for stdin"`
	Assignee    string `help:"Assignee (me, id, or email)"`
	State       string `help:"Workflow state name or ID"`
	Priority    int    `help:"Priority (0-4)" default:"-1"`
	Project     string `help:"Project name or ID"`
	Cycle       string `help:"Cycle ID or 'current'"`
	Labels      string `help:"Comma-separated label names or IDs"`
}

type IssueCloseCmd struct {
	IssueRef string `arg:"" name:"issue-ref" help:"Issue reference"`
}

type IssueReopenCmd struct {
	IssueRef string `arg:"" name:"issue-ref" help:"Issue reference"`
}

func (c *IssueListCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}

	filter, err := buildListFilter(ctx, client, listFilterFlags{
		Team:     c.Team,
		Assignee: c.Assignee,
		State:    c.State,
		Labels:   c.Labels,
		Project:  c.Project,
		Cycle:    c.Cycle,
		Search:   c.Search,
		Priority: c.Priority,
	})
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)

	// ndjson streams page by page instead of buffering every result.
	if out.Mode == modeNDJSON {
		return streamIssues(ctx, client, filter, c.Limit, c.After, c.All, out)
	}

	issues, err := collectIssues(ctx, client, filter, c.Limit, c.After, c.All)
	if err != nil {
		return classified(err)
	}
	return printIssueList(out, issues)
}

type listFilterFlags struct {
	Team     string
	Assignee string
	State    string
	Labels   string
	Project  string
	Cycle    string
	Search   string
	Priority int
}

func buildListFilter(ctx context.Context, client linear.API, flags listFilterFlags) (linear.IssueFilter, error) {
	filter := linear.IssueFilter{}
	if flags.Team != "" {
		teamID, err := client.ResolveTeamID(ctx, flags.Team)
		if err != nil {
			return filter, err
		}
		filter.TeamID = teamID
	}
	if flags.Assignee != "" {
		assigneeID, err := client.ResolveUserID(ctx, flags.Assignee)
		if err != nil {
			return filter, err
		}
		filter.AssigneeID = assigneeID
	}
	if flags.State != "" {
		if filter.TeamID == "" {
			return filter, errors.New("--state requires --team to resolve state name")
		}
		stateID, err := client.ResolveStateID(ctx, filter.TeamID, flags.State)
		if err != nil {
			return filter, err
		}
		filter.StateID = stateID
	}
	if flags.Labels != "" {
		labelIDs, err := client.ResolveLabelIDs(ctx, splitComma(flags.Labels))
		if err != nil {
			return filter, err
		}
		filter.LabelIDs = labelIDs
	}
	if flags.Project != "" {
		projectID, err := client.ResolveProjectID(ctx, flags.Project)
		if err != nil {
			return filter, err
		}
		filter.ProjectID = projectID
	}
	if flags.Cycle != "" {
		if filter.TeamID == "" {
			return filter, errors.New("--cycle requires --team")
		}
		cycleID, err := client.ResolveCycleID(ctx, filter.TeamID, flags.Cycle)
		if err != nil {
			return filter, err
		}
		filter.CycleID = cycleID
	}
	if flags.Search != "" {
		filter.Search = flags.Search
	}
	if flags.Priority >= 0 {
		priority := flags.Priority
		filter.Priority = &priority
	}
	return filter, nil
}

// collectIssues follows pagination until limit (or every page with all).
func collectIssues(ctx context.Context, client linear.API, filter linear.IssueFilter, limit int, after string, all bool) ([]linear.IssueSummary, error) {
	var issues []linear.IssueSummary
	cursor := after
	for {
		batch := limit
		if all {
			batch = 50
		} else if remaining := limit - len(issues); remaining < batch {
			batch = remaining
		}
		page, err := client.Issues(ctx, filter, batch, cursor)
		if err != nil {
			return nil, err
		}
		issues = append(issues, page.Nodes...)
		if !all && len(issues) >= limit {
			return issues[:limit], nil
		}
		if !page.PageInfo.HasNextPage || page.PageInfo.EndCursor == "" {
			return issues, nil
		}
		if !all {
			return issues, nil
		}
		cursor = page.PageInfo.EndCursor
	}
}

func streamIssues(ctx context.Context, client linear.API, filter linear.IssueFilter, limit int, after string, all bool, out output) error {
	cursor := after
	printed := 0
	for {
		batch := 50
		if !all && limit-printed < batch {
			batch = limit - printed
		}
		page, err := client.Issues(ctx, filter, batch, cursor)
		if err != nil {
			return classified(err)
		}
		if err := out.Print(page.Nodes); err != nil {
			return err
		}
		printed += len(page.Nodes)
		if !all && printed >= limit {
			return nil
		}
		if !page.PageInfo.HasNextPage || page.PageInfo.EndCursor == "" {
			return nil
		}
		cursor = page.PageInfo.EndCursor
	}
}

func printIssueList(out output, issues []linear.IssueSummary) error {
	if out.IDOnly {
		for _, issue := range issues {
			_, _ = fmt.Fprintln(out.Out, issue.Identifier)
		}
		return nil
	}
	if out.Structured() {
		return out.Print(issues)
	}
	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, []string{
			issue.Identifier, issue.Title, issue.State, issue.Assignee,
			issue.TeamKey, out.priorityLabel(issue.Priority),
		})
	}
	return out.PrintTable([]string{"ID", "Title", "State", "Assignee", "Team", "Priority"}, rows)
}

func (c *IssueGetCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	refs, err := extractIssueRefs([]string{c.IssueRef}, cmdCtx.deps.In)
	if err != nil {
		return err
	}
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	issue, err := client.Issue(ctx, refs[0])
	if err != nil {
		return classified(err)
	}
	if c.Comments {
		comments, err := client.IssueComments(ctx, issue.ID, c.CommentsLimit)
		if err != nil {
			return classified(err)
		}
		issue.Comments = comments
	}

	out := outputFor(cmdCtx)
	if out.IDOnly {
		_, _ = fmt.Fprintln(out.Out, issue.Identifier)
		return nil
	}
	if out.Structured() {
		return out.Print(issue)
	}
	return printIssueDetail(cmdCtx, out, issue, c.Comments)
}

func printIssueDetail(cmdCtx *commandContext, out output, issue linear.IssueDetail, withComments bool) error {
	rows := [][]string{{
		issue.Identifier,
		issue.Title,
		issue.State,
		issue.Assignee,
		issue.TeamKey,
		out.priorityLabel(issue.Priority),
	}}
	if err := out.PrintTable([]string{"ID", "Title", "State", "Assignee", "Team", "Priority"}, rows); err != nil {
		return err
	}
	w := cmdCtx.deps.Out
	if issue.URL != "" {
		_, _ = fmt.Fprintf(w, "\nURL: %s\n", issue.URL)
	}
	if len(issue.Labels) > 0 {
		_, _ = fmt.Fprintf(w, "Labels: %s\n", strings.Join(issue.Labels, ", "))
	}
	if issue.Description != "" {
		_, _ = fmt.Fprintf(w, "\nDescription:\n%s\n", issue.Description)
	}
	if issue.CreatedAt != "" || issue.UpdatedAt != "" {
		_, _ = fmt.Fprintf(w, "\nCreated: %s\nUpdated: %s\n", issue.CreatedAt, issue.UpdatedAt)
	}
	if withComments && len(issue.Comments) > 0 {
		out.Header("\nComments:")
		for _, comment := range issue.Comments {
			author := comment.UserName
			if author == "" {
				author = comment.UserEmail
			}
			if author != "" {
				_, _ = fmt.Fprintf(w, "- %s (%s): %s\n", author, comment.CreatedAt, comment.Body)
			} else {
				_, _ = fmt.Fprintf(w, "- %s: %s\n", comment.CreatedAt, comment.Body)
			}
		}
	}
	return nil
}

func (c *IssueCreateCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}

	teamID, err := client.ResolveTeamID(ctx, c.Team)
	if err != nil {
		return classified(err)
	}

	input := map[string]any{
		"teamId": teamID,
		"title":  c.Title,
	}

	description, err := readOptionalBody(c.Description, cmdCtx.deps.In)
	if err != nil {
		return exitError(exitGeneral, err)
	}
	if description != "" {
		input["description"] = description
	}
	if c.Assignee != "" {
		assigneeID, err := client.ResolveUserID(ctx, c.Assignee)
		if err != nil {
			return classified(err)
		}
		input["assigneeId"] = assigneeID
	}
	if c.State != "" {
		stateID, err := client.ResolveStateID(ctx, teamID, c.State)
		if err != nil {
			return classified(err)
		}
		input["stateId"] = stateID
	}
	if c.Priority >= 0 {
		input["priority"] = c.Priority
	}
	if c.Project != "" {
		projectID, err := client.ResolveProjectID(ctx, c.Project)
		if err != nil {
			return classified(err)
		}
		input["projectId"] = projectID
	}
	if c.Cycle != "" {
		cycleID, err := client.ResolveCycleID(ctx, teamID, c.Cycle)
		if err != nil {
			return classified(err)
		}
		input["cycleId"] = cycleID
	}
	if c.Labels != "" {
		labelIDs, err := client.ResolveLabelIDs(ctx, splitComma(c.Labels))
		if err != nil {
			return classified(err)
		}
		input["labelIds"] = labelIDs
	}

	out := outputFor(cmdCtx)
	if cmdCtx.global.DryRun {
		out.Infof("dry-run: would create issue %q in team %s", c.Title, c.Team)
		if out.Structured() {
			return out.Print(map[string]any{"dry_run": true, "input": input})
		}
		return nil
	}

	issue, err := client.IssueCreate(ctx, input)
	if err != nil {
		return classified(err)
	}
	return printIssueSummary(out, issue)
}

func (c *IssueUpdateCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	refs, err := extractIssueRefs([]string{c.IssueRef}, cmdCtx.deps.In)
	if err != nil {
		return err
	}
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	issueID, err := client.ResolveIssueID(ctx, refs[0])
	if err != nil {
		return classified(err)
	}

	input := map[string]any{"id": issueID}
	teamID := ""
	if c.Team != "" {
		teamID, err = client.ResolveTeamID(ctx, c.Team)
		if err != nil {
			return classified(err)
		}
	}
	if c.Title != "" {
		input["title"] = c.Title
	}

	description, err := readOptionalBody(c.Description, cmdCtx.deps.In)
	if err != nil {
		return exitError(exitGeneral, err)
	}
	if description != "" {
		input["description"] = description
	}
	if c.Assignee != "" {
		assigneeID, err := client.ResolveUserID(ctx, c.Assignee)
		if err != nil {
			return classified(err)
		}
		input["assigneeId"] = assigneeID
	}
	if c.State != "" {
		if teamID == "" {
			issue, err := client.Issue(ctx, refs[0])
			if err != nil {
				return classified(err)
			}
			teamID = issue.TeamID
		}
		stateID, err := client.ResolveStateID(ctx, teamID, c.State)
		if err != nil {
			return classified(err)
		}
		input["stateId"] = stateID
	}
	if c.Priority >= 0 {
		input["priority"] = c.Priority
	}
	if c.Project != "" {
		projectID, err := client.ResolveProjectID(ctx, c.Project)
		if err != nil {
			return classified(err)
		}
		input["projectId"] = projectID
	}
	if c.Cycle != "" {
		if teamID == "" {
			issue, err := client.Issue(ctx, refs[0])
			if err != nil {
				return classified(err)
			}
			teamID = issue.TeamID
		}
		cycleID, err := client.ResolveCycleID(ctx, teamID, c.Cycle)
		if err != nil {
			return classified(err)
		}
		input["cycleId"] = cycleID
	}
	if c.Labels != "" {
		labelIDs, err := client.ResolveLabelIDs(ctx, splitComma(c.Labels))
		if err != nil {
			return classified(err)
		}
		input["labelIds"] = labelIDs
	}

	out := outputFor(cmdCtx)
	if cmdCtx.global.DryRun {
		out.Infof("dry-run: would update %s", refs[0])
		if out.Structured() {
			return out.Print(map[string]any{"dry_run": true, "input": input})
		}
		return nil
	}

	issue, err := client.IssueUpdate(ctx, input)
	if err != nil {
		return classified(err)
	}
	return printIssueSummary(out, issue)
}

func (c *IssueCloseCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	return issueSetStateType(ctx, cmdCtx, c.IssueRef, "completed")
}

func (c *IssueReopenCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	return issueSetStateType(ctx, cmdCtx, c.IssueRef, "unstarted")
}

func issueSetStateType(ctx context.Context, cmdCtx *commandContext, issueRef, stateType string) error {
	refs, err := extractIssueRefs([]string{issueRef}, cmdCtx.deps.In)
	if err != nil {
		return err
	}
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	issue, err := client.Issue(ctx, refs[0])
	if err != nil {
		return classified(err)
	}
	states, err := client.WorkflowStates(ctx, issue.TeamID)
	if err != nil {
		return classified(err)
	}
	stateID := ""
	for _, state := range states {
		if strings.EqualFold(state.Type, stateType) {
			stateID = state.ID
			break
		}
	}
	if stateID == "" {
		return exitError(exitNotFound, fmt.Errorf("no workflow state of type %s", stateType))
	}

	out := outputFor(cmdCtx)
	if cmdCtx.global.DryRun {
		out.Infof("dry-run: would move %s to a %s state", issue.Identifier, stateType)
		return nil
	}

	updated, err := client.IssueUpdate(ctx, map[string]any{"id": issue.ID, "stateId": stateID})
	if err != nil {
		return classified(err)
	}
	return printIssueSummary(out, updated)
}

func printIssueSummary(out output, issue linear.IssueSummary) error {
	if out.IDOnly {
		_, _ = fmt.Fprintln(out.Out, issue.Identifier)
		return nil
	}
	if out.Structured() {
		return out.Print(issue)
	}
	return out.PrintTable([]string{"ID", "Title", "URL"}, [][]string{{issue.Identifier, issue.Title, issue.URL}})
}

// classified wraps a collaborator error with its mapped exit code,
// preserving the classification for the envelope writer.
func classified(err error) error {
	return exitError(mapErrorToExitCode(err), err)
}
