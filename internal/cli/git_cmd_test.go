package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/linearcli/linearcli/internal/linear"
)

func TestGitBranchPrintsSuggestedName(t *testing.T) {
	api := &fakeAPI{detail: linear.IssueDetail{
		Identifier: "ENG-42", Title: "fix flaky test", BranchName: "ada/eng-42-fix-flaky-test",
	}}
	deps, stdout, _ := testDeps(t, api)
	if code := ExecuteWith(deps, []string{"git", "branch", "ENG-42", "--api-key", "k"}); code != exitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if got := strings.TrimSpace(stdout.String()); got != "ada/eng-42-fix-flaky-test" {
		t.Errorf("branch = %q", got)
	}
}

func TestGitBranchFallsBackToIdentifier(t *testing.T) {
	api := &fakeAPI{detail: linear.IssueDetail{Identifier: "ENG-42", Title: "x"}}
	deps, stdout, _ := testDeps(t, api)
	if code := ExecuteWith(deps, []string{"g", "branch", "ENG-42", "--api-key", "k"}); code != exitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if got := strings.TrimSpace(stdout.String()); got != "eng-42" {
		t.Errorf("branch = %q", got)
	}
}

func TestGitCheckoutRunsGit(t *testing.T) {
	api := &fakeAPI{detail: linear.IssueDetail{Identifier: "ENG-42", BranchName: "ada/eng-42"}}
	deps, _, _ := testDeps(t, api)

	var ranName string
	var ranArgs []string
	deps.Exec = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		ranName = name
		ranArgs = args
		return nil, nil
	}

	if code := ExecuteWith(deps, []string{"git", "checkout", "ENG-42", "--api-key", "k"}); code != exitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if ranName != "git" {
		t.Errorf("ran %q, want git", ranName)
	}
	want := []string{"checkout", "-B", "ada/eng-42"}
	if strings.Join(ranArgs, " ") != strings.Join(want, " ") {
		t.Errorf("args = %v, want %v", ranArgs, want)
	}
}

func TestGitPrDryRunNeverExecs(t *testing.T) {
	api := &fakeAPI{detail: linear.IssueDetail{Identifier: "ENG-42", Title: "t", BranchName: "b"}}
	deps, stdout, _ := testDeps(t, api)

	execd := false
	deps.Exec = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		execd = true
		return nil, nil
	}

	if code := ExecuteWith(deps, []string{"git", "pr", "ENG-42", "--dry-run", "--api-key", "k"}); code != exitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if execd {
		t.Error("dry-run executed gh")
	}
	if !strings.Contains(stdout.String(), "gh pr create") {
		t.Errorf("dry-run output = %q", stdout.String())
	}
}
