package cli

import (
	"context"
	"fmt"
	"io"
	"os"
)

type UploadsCmd struct {
	Fetch UploadFetchCmd `cmd:"" default:"withargs" help:"Download a Linear-hosted upload"`
}

type UploadFetchCmd struct {
	URL  string `arg:"" help:"Upload URL (https://uploads.linear.app/...)"`
	File string `help:"Write to a file instead of stdout"`
}

func (c *UploadFetchCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(exitAuth, err)
	}

	w := io.Writer(cmdCtx.deps.Out)
	if c.File != "" {
		f, err := os.Create(c.File)
		if err != nil {
			return exitError(exitGeneral, fmt.Errorf("create %s: %w", c.File, err))
		}
		defer f.Close()
		w = f
	}

	if cmdCtx.global.DryRun {
		outputFor(cmdCtx).Infof("dry-run: would download %s", c.URL)
		return nil
	}
	if err := client.Download(ctx, c.URL, w); err != nil {
		return classified(err)
	}
	if c.File != "" {
		outputFor(cmdCtx).Infof("Saved %s", c.File)
	}
	return nil
}
