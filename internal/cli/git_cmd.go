package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/linearcli/linearcli/internal/linear"
)

type GitCmd struct {
	Branch   GitBranchCmd   `cmd:"" help:"Print the suggested branch name for an issue"`
	Checkout GitCheckoutCmd `cmd:"" help:"Create or switch to the issue's branch"`
	Pr       GitPrCmd       `cmd:"" help:"Open a pull request for the issue via gh"`
}

type GitBranchCmd struct {
	Issue string `arg:"" help:"Issue reference, e.g. ENG-123"`
}

type GitCheckoutCmd struct {
	Issue string `arg:"" help:"Issue reference, e.g. ENG-123"`
}

type GitPrCmd struct {
	Issue string `arg:"" help:"Issue reference, e.g. ENG-123"`
	Draft bool   `help:"Open the pull request as a draft"`
	Base  string `help:"Base branch for the pull request"`
}

func (c *GitBranchCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	branch, _, err := issueBranch(ctx, cmdCtx, c.Issue)
	if err != nil {
		return err
	}
	out := outputFor(cmdCtx)
	if out.Structured() {
		return out.Print(map[string]any{"issue": c.Issue, "branch": branch})
	}
	_, _ = fmt.Fprintln(out.Out, branch)
	return nil
}

func (c *GitCheckoutCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	branch, _, err := issueBranch(ctx, cmdCtx, c.Issue)
	if err != nil {
		return err
	}
	out := outputFor(cmdCtx)
	if cmdCtx.global.DryRun {
		out.Infof("dry-run: would run git checkout -B %s", branch)
		return nil
	}
	if cmdCtx.deps.Exec == nil {
		return exitError(exitGeneral, fmt.Errorf("no command runner configured"))
	}
	if _, err := cmdCtx.deps.Exec(ctx, "git", "checkout", "-B", branch); err != nil {
		return exitError(exitGeneral, fmt.Errorf("git checkout: %w", err))
	}
	out.Infof("Switched to branch %s", branch)
	return nil
}

func (c *GitPrCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	branch, issue, err := issueBranch(ctx, cmdCtx, c.Issue)
	if err != nil {
		return err
	}

	args := []string{"pr", "create",
		"--head", branch,
		"--title", fmt.Sprintf("%s: %s", issue.Identifier, issue.Title),
		"--body", issue.URL,
	}
	if c.Draft {
		args = append(args, "--draft")
	}
	if c.Base != "" {
		args = append(args, "--base", c.Base)
	}

	out := outputFor(cmdCtx)
	if cmdCtx.global.DryRun {
		out.Infof("dry-run: would run gh %s", strings.Join(args, " "))
		return nil
	}
	if cmdCtx.deps.Exec == nil {
		return exitError(exitGeneral, fmt.Errorf("no command runner configured"))
	}
	stdout, err := cmdCtx.deps.Exec(ctx, "gh", args...)
	if err != nil {
		return exitError(exitGeneral, fmt.Errorf("gh pr create: %w", err))
	}
	if out.Structured() {
		return out.Print(map[string]any{"issue": issue.Identifier, "branch": branch, "output": strings.TrimSpace(string(stdout))})
	}
	_, _ = out.Out.Write(stdout)
	return nil
}

// issueBranch fetches the issue and returns Linear's suggested branch
// name, falling back to a lowercased identifier slug.
func issueBranch(ctx context.Context, cmdCtx *commandContext, ref string) (string, linear.IssueDetail, error) {
	refs, err := extractIssueRefs([]string{ref}, cmdCtx.deps.In)
	if err != nil {
		return "", linear.IssueDetail{}, exitError(exitGeneral, err)
	}
	client, err := cmdCtx.apiClient()
	if err != nil {
		return "", linear.IssueDetail{}, exitError(exitAuth, err)
	}
	issue, err := client.Issue(ctx, refs[0])
	if err != nil {
		return "", linear.IssueDetail{}, classified(err)
	}
	branch := issue.BranchName
	if branch == "" {
		branch = strings.ToLower(issue.Identifier)
	}
	return branch, issue, nil
}
