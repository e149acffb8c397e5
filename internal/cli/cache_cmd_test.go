package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheStatusAndClear(t *testing.T) {
	deps, stdout, _ := testDeps(t, &fakeAPI{})
	if err := os.WriteFile(filepath.Join(deps.DataDir, "schema.json"), []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	if code := ExecuteWith(deps, []string{"cache", "status"}); code != exitSuccess {
		t.Fatalf("status exit = %d", code)
	}
	if !strings.Contains(stdout.String(), "1") {
		t.Errorf("status output = %q", stdout.String())
	}

	if code := ExecuteWith(deps, []string{"cache", "clear"}); code != exitSuccess {
		t.Fatalf("clear exit = %d", code)
	}
	entries, err := os.ReadDir(deps.DataDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("data dir not cleared: %v", entries)
	}
}

func TestCacheClearDryRun(t *testing.T) {
	deps, _, _ := testDeps(t, &fakeAPI{})
	path := filepath.Join(deps.DataDir, "schema.json")
	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if code := ExecuteWith(deps, []string{"cache", "clear", "--dry-run"}); code != exitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("dry-run deleted files")
	}
}
