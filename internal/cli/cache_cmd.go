package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type CacheCmd struct {
	Status CacheStatusCmd `cmd:"" default:"withargs" help:"Report the local data directory"`
	Clear  CacheClearCmd  `cmd:"" help:"Delete the local data directory's contents"`
}

type CacheStatusCmd struct{}

type CacheClearCmd struct{}

func (c *CacheStatusCmd) Run(cmdCtx *commandContext) error {
	dir := cmdCtx.deps.DataDir
	files := 0
	var bytes int64
	exists := true
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		exists = false
	} else {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			files++
			bytes += info.Size()
			return nil
		})
	}

	out := outputFor(cmdCtx)
	if out.Structured() {
		return out.Print(map[string]any{
			"dir":    dir,
			"exists": exists,
			"files":  files,
			"bytes":  bytes,
		})
	}
	out.Infof("Data dir: %s", dir)
	out.Infof("Files:    %d (%d bytes)", files, bytes)
	return nil
}

func (c *CacheClearCmd) Run(cmdCtx *commandContext) error {
	dir := cmdCtx.deps.DataDir
	if dir == "" {
		return exitError(exitGeneral, fmt.Errorf("no data directory configured"))
	}

	out := outputFor(cmdCtx)
	if cmdCtx.global.DryRun {
		out.Infof("dry-run: would clear %s", dir)
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			out.Infof("Nothing to clear")
			return nil
		}
		return exitError(exitGeneral, fmt.Errorf("read %s: %w", dir, err))
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return exitError(exitGeneral, fmt.Errorf("clear %s: %w", dir, err))
		}
	}
	out.Infof("Cleared %s", dir)
	return nil
}
