package cli

import (
	"context"
	"fmt"
)

type FavoritesCmd struct {
	List   FavoriteListCmd   `cmd:"" default:"withargs" help:"List favorites"`
	Add    FavoriteAddCmd    `cmd:"" help:"Favorite an issue"`
	Remove FavoriteRemoveCmd `cmd:"" help:"Remove a favorite"`
}

type FavoriteListCmd struct {
	Limit int `help:"Maximum number of favorites" default:"50"`
}

type FavoriteAddCmd struct {
	Issue string `arg:"" help:"Issue reference, e.g. ENG-123"`
}

type FavoriteRemoveCmd struct {
	Favorite string `arg:"" help:"Favorite ID"`
}

func (c *FavoriteListCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	favorites, err := client.Favorites(ctx, c.Limit)
	if err != nil {
		return classified(err)
	}

	out := outputFor(cmdCtx)
	if out.IDOnly {
		for _, favorite := range favorites {
			_, _ = fmt.Fprintln(out.Out, favorite.ID)
		}
		return nil
	}
	if out.Structured() {
		return out.Print(favorites)
	}
	rows := make([][]string, 0, len(favorites))
	for _, favorite := range favorites {
		rows = append(rows, []string{favorite.ID, favorite.Type, favorite.Identifier, favorite.Title})
	}
	return out.PrintTable([]string{"ID", "Type", "Ref", "Title"}, rows)
}

func (c *FavoriteAddCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
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
		out.Infof("dry-run: would favorite %s", refs[0])
		return nil
	}
	favorite, err := client.FavoriteCreate(ctx, issueID)
	if err != nil {
		return classified(err)
	}
	if out.IDOnly {
		_, _ = fmt.Fprintln(out.Out, favorite.ID)
		return nil
	}
	if out.Structured() {
		return out.Print(favorite)
	}
	out.Infof("Favorited %s", refs[0])
	return nil
}

func (c *FavoriteRemoveCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}
	out := outputFor(cmdCtx)
	if cmdCtx.global.DryRun {
		out.Infof("dry-run: would remove favorite %s", c.Favorite)
		return nil
	}
	if err := client.FavoriteDelete(ctx, c.Favorite); err != nil {
		return classified(err)
	}
	if out.Structured() {
		return out.Print(map[string]any{"deleted": true, "id": c.Favorite})
	}
	out.Infof("Removed favorite %s", c.Favorite)
	return nil
}
