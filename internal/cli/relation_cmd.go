package cli

import (
	"context"
	"fmt"
)

type RelationsCmd struct {
	List     RelationListCmd     `cmd:"" help:"List an issue's relations"`
	Add      RelationAddCmd      `cmd:"" help:"Relate two issues"`
	Remove   RelationRemoveCmd   `cmd:"" help:"Remove a relation"`
	Parent   RelationParentCmd   `cmd:"" help:"Set an issue's parent"`
	Unparent RelationUnparentCmd `cmd:"" help:"Clear an issue's parent"`
}

type RelationListCmd struct {
	Issue string `arg:"" help:"Issue reference, e.g. ENG-123"`
	Limit int    `help:"Maximum relations per direction" default:"50"`
}

type RelationAddCmd struct {
	Issue   string `arg:"" help:"Issue reference"`
	Related string `arg:"" help:"Related issue reference"`
	Type    string `help:"Relation type" enum:"related,blocks,duplicate" default:"related"`
}

type RelationRemoveCmd struct {
	Relation string `arg:"" help:"Relation ID"`
}

type RelationParentCmd struct {
	Issue  string `arg:"" help:"Child issue reference"`
	Parent string `arg:"" help:"Parent issue reference"`
}

type RelationUnparentCmd struct {
	Issue string `arg:"" help:"Issue reference"`
}

func (c *RelationListCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
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
	set, err := client.IssueRelations(ctx, issueID, c.Limit)
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if out.Structured() {
		return out.Print(set)
	}
	rows := make([][]string, 0, len(set.Relations)+len(set.InverseRelations))
	for _, rel := range set.Relations {
		rows = append(rows, []string{rel.ID, rel.Type, rel.RelatedIssueID})
	}
	for _, rel := range set.InverseRelations {
		rows = append(rows, []string{rel.ID, "inverse " + rel.Type, rel.IssueID})
	}
	return out.PrintTable([]string{"ID", "Type", "Issue"}, rows)
}

func (c *RelationAddCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	refs, err := extractIssueRefs([]string{c.Issue, c.Related}, cmdCtx.deps.In)
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
	relatedID, err := client.ResolveIssueID(ctx, refs[1])
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if cmdCtx.global.DryRun {
		out.Infof("dry-run: would relate %s to %s (%s)", refs[0], refs[1], c.Type)
		return nil
	}

	rel, err := client.IssueRelationCreate(ctx, issueID, relatedID, c.Type)
	if err != nil {
		return classified(err)
	}
	if out.IDOnly {
		_, _ = fmt.Fprintln(out.Out, rel.ID)
		return nil
	}
	if out.Structured() {
		return out.Print(rel)
	}
	out.Infof("Related %s to %s (%s)", refs[0], refs[1], c.Type)
	return nil
}

func (c *RelationRemoveCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	out := outputFor(cmdCtx)
	if cmdCtx.global.DryRun {
		out.Infof("dry-run: would remove relation %s", c.Relation)
		return nil
	}
	if err := client.IssueRelationDelete(ctx, c.Relation); err != nil {
		return classified(err)
	}
	if out.Structured() {
		return out.Print(map[string]any{"deleted": true, "id": c.Relation})
	}
	out.Infof("Removed relation %s", c.Relation)
	return nil
}

func (c *RelationParentCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	refs, err := extractIssueRefs([]string{c.Issue, c.Parent}, cmdCtx.deps.In)
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
	parentID, err := client.ResolveIssueID(ctx, refs[1])
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if cmdCtx.global.DryRun {
		out.Infof("dry-run: would set parent of %s to %s", refs[0], refs[1])
		return nil
	}
	issue, err := client.IssueUpdate(ctx, map[string]any{"id": issueID, "parentId": parentID})
	if err != nil {
		return classified(err)
	}
	return printIssueSummary(out, issue)
}

func (c *RelationUnparentCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
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

	out := outputFor(cmdCtx)
	if cmdCtx.global.DryRun {
		out.Infof("dry-run: would clear parent of %s", refs[0])
		return nil
	}
	issue, err := client.IssueUpdate(ctx, map[string]any{"id": issueID, "parentId": nil})
	if err != nil {
		return classified(err)
	}
	return printIssueSummary(out, issue)
}
