package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/linearcli/linearcli/internal/linear"
)

func TestWatchOnceEmitsStructuredSnapshot(t *testing.T) {
	detail := linear.IssueDetail{
		ID: "id-1", Identifier: "ENG-7", Title: "broken build",
		State: "Todo", UpdatedAt: "2025-06-01T00:00:00Z",
	}
	deps, stdout, _ := testDeps(t, &fakeAPI{detail: detail})

	code := ExecuteWith(deps, []string{"watch", "ENG-7", "--once", "-o", "json", "--api-key", "k"})
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

func TestWatchOnceQuietStillPrintsSnapshot(t *testing.T) {
	detail := linear.IssueDetail{
		ID: "id-1", Identifier: "ENG-7", Title: "broken build",
		State: "Todo", UpdatedAt: "2025-06-01T00:00:00Z",
	}
	deps, stdout, _ := testDeps(t, &fakeAPI{detail: detail})

	code := ExecuteWith(deps, []string{"watch", "ENG-7", "--once", "--quiet", "--api-key", "k"})
	if code != exitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(stdout.String(), "ENG-7") {
		t.Errorf("quiet --once produced no snapshot: %q", stdout.String())
	}
}
