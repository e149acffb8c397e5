package cli

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/linearcli/linearcli/internal/linear"
)

func TestIssueGetRejectsBadReferenceBeforeClient(t *testing.T) {
	api := &fakeAPI{}
	deps, _, stderr := testDeps(t, api)
	clientBuilt := false
	inner := deps.NewClient
	deps.NewClient = func(token string, timeout time.Duration) linear.API {
		clientBuilt = true
		return inner(token, timeout)
	}

	code := ExecuteWith(deps, []string{"issues", "get", "garbage", "--api-key", "k"})
	if code != exitGeneral {
		t.Fatalf("exit = %d, want %d", code, exitGeneral)
	}
	if clientBuilt {
		t.Error("client was constructed for an invalid reference")
	}
	if !strings.Contains(stderr.String(), "garbage") {
		t.Errorf("message does not name the token: %q", stderr.String())
	}
}

func TestIssueGetStructured(t *testing.T) {
	detail := linear.IssueDetail{
		ID: "id-1", Identifier: "ENG-7", Title: "broken build",
		State: "Todo", TeamKey: "ENG",
	}
	deps, stdout, _ := testDeps(t, &fakeAPI{detail: detail})
	code := ExecuteWith(deps, []string{"issues", "get", "ENG-7", "-o", "json", "--api-key", "k"})
	if code != exitSuccess {
		t.Fatalf("exit = %d", code)
	}
	var got map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["identifier"] != "ENG-7" {
		t.Errorf("identifier = %v", got["identifier"])
	}
}

func TestIssueGetStdinPlaceholderQueriesRealRef(t *testing.T) {
	api := &fakeAPI{detail: linear.IssueDetail{ID: "id-1", Identifier: "ENG-7", Title: "broken build"}}
	deps, _, _ := testDeps(t, api)
	deps.In = strings.NewReader("ENG-7\n")

	code := ExecuteWith(deps, []string{"issues", "get", "-", "--api-key", "k"})
	if code != exitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if len(api.issueLookups) != 1 || api.issueLookups[0] != "ENG-7" {
		t.Errorf("issue lookups = %v, want [ENG-7]", api.issueLookups)
	}
}

func TestIssueUpdateUsesExtractedRef(t *testing.T) {
	api := &fakeAPI{}
	deps, _, _ := testDeps(t, api)
	deps.In = strings.NewReader("eng-9\n")

	args := []string{"issues", "update", "-", "--assignee", "ada", "--api-key", "k"}
	if code := ExecuteWith(deps, args); code != exitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if len(api.updated) != 1 || api.updated[0] != "id-eng-9" {
		t.Errorf("updated = %v, want [id-eng-9]", api.updated)
	}
}

func TestIssueCreateDryRun(t *testing.T) {
	api := &fakeAPI{}
	deps, stdout, _ := testDeps(t, api)
	args := []string{"issues", "create", "--team", "ENG", "--title", "spike",
		"--dry-run", "--api-key", "k"}
	if code := ExecuteWith(deps, args); code != exitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(stdout.String(), "dry-run") {
		t.Errorf("dry-run output = %q", stdout.String())
	}
	if len(api.updated) != 0 {
		t.Error("dry-run mutated state")
	}
}

func TestIssueListNotFoundFilterExitsTwo(t *testing.T) {
	api := &fakeAPI{issueErr: linear.ErrNotFound}
	deps, _, _ := testDeps(t, api)
	code := ExecuteWith(deps, []string{"issues", "list", "--api-key", "k"})
	if code != exitNotFound {
		t.Fatalf("exit = %d, want %d", code, exitNotFound)
	}
}
