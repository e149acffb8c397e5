package cli

import (
	"encoding/csv"
	"os"
	"strings"
	"testing"

	"github.com/linearcli/linearcli/internal/linear"
)

func exportFixture() linear.IssuePage {
	return linear.IssuePage{
		Nodes: []linear.IssueSummary{
			{Identifier: "ENG-1", Title: "First, with comma", State: "Todo", Assignee: "ada", Priority: 2, TeamKey: "ENG", URL: "https://linear.app/x/ENG-1"},
			{Identifier: "ENG-2", Title: "Second | pipe", State: "Done", Assignee: "", Priority: 0, TeamKey: "ENG", URL: "https://linear.app/x/ENG-2"},
		},
	}
}

func TestExportCsv(t *testing.T) {
	deps, stdout, _ := testDeps(t, &fakeAPI{issuePage: exportFixture()})
	if code := ExecuteWith(deps, []string{"export", "csv", "--api-key", "k"}); code != exitSuccess {
		t.Fatalf("exit = %d", code)
	}

	records, err := csv.NewReader(strings.NewReader(stdout.String())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v\n%s", err, stdout.String())
	}
	if len(records) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(records))
	}
	if records[0][0] != "identifier" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][1] != "First, with comma" {
		t.Errorf("comma was not preserved by quoting: %v", records[1])
	}
	if records[2][0] != "ENG-2" {
		t.Errorf("row order = %v", records)
	}
}

func TestExportMarkdown(t *testing.T) {
	deps, stdout, _ := testDeps(t, &fakeAPI{issuePage: exportFixture()})
	if code := ExecuteWith(deps, []string{"export", "markdown", "--api-key", "k"}); code != exitSuccess {
		t.Fatalf("exit = %d", code)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), stdout.String())
	}
	if !strings.HasPrefix(lines[0], "| identifier |") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "---") {
		t.Errorf("separator = %q", lines[1])
	}
	if !strings.Contains(lines[3], `Second \| pipe`) {
		t.Errorf("pipe not escaped: %q", lines[3])
	}
}

func TestExportCsvToFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/issues.csv"
	deps, stdout, _ := testDeps(t, &fakeAPI{issuePage: exportFixture()})
	if code := ExecuteWith(deps, []string{"export", "csv", "--file", path, "--api-key", "k"}); code != exitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if strings.Contains(stdout.String(), "ENG-1") {
		t.Errorf("rows leaked to stdout: %q", stdout.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "ENG-1") {
		t.Errorf("file missing rows:\n%s", data)
	}
}
