package cli

import (
	"context"
	"fmt"
)

type CommentsCmd struct {
	List   CommentListCmd   `cmd:"" help:"List comments on an issue"`
	Create CommentCreateCmd `cmd:"" help:"Add a comment to an issue"`
}

type CommentListCmd struct {
	Issue string `arg:"" help:"Issue reference, e.g. ENG-123"`
	Limit int    `help:"Maximum number of comments" default:"50"`
}

type CommentCreateCmd struct {
	Issue string `arg:"" help:"Issue reference, e.g. ENG-123"`
	Body  string `arg:"" help:"Comment body or '-' for stdin"`
}

func (c *CommentListCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
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
	comments, err := client.IssueComments(ctx, issueID, c.Limit)
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if out.IDOnly {
		for _, comment := range comments {
			_, _ = fmt.Fprintln(out.Out, comment.ID)
		}
		return nil
	}
	if out.Structured() {
		return out.Print(comments)
	}
	for i, comment := range comments {
		if i > 0 {
			_, _ = fmt.Fprintln(out.Out)
		}
		out.Header(fmt.Sprintf("%s  %s", comment.UserName, comment.CreatedAt))
		_, _ = fmt.Fprintln(out.Out, comment.Body)
	}
	return nil
}

func (c *CommentCreateCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	refs, err := extractIssueRefs([]string{c.Issue}, cmdCtx.deps.In)
	if err != nil {
		return exitError(exitGeneral, err)
	}
	body, err := readOptionalBody(c.Body, cmdCtx.deps.In)
	if err != nil {
		return exitError(exitGeneral, err)
	}
	if body == "" {
		return exitError(exitGeneral, fmt.Errorf("comment body is empty"))
	}

	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	issueID, err := client.ResolveIssueID(ctx, refs[0])
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if cmdCtx.global.DryRun {
		out.Infof("dry-run: would comment on %s", refs[0])
		return nil
	}

	commentID, err := client.CommentCreate(ctx, issueID, body)
	if err != nil {
		return classified(err)
	}
	if out.IDOnly {
		_, _ = fmt.Fprintln(out.Out, commentID)
		return nil
	}
	if out.Structured() {
		return out.Print(map[string]any{"id": commentID, "issue": refs[0]})
	}
	out.Infof("Added comment to %s", refs[0])
	return nil
}
