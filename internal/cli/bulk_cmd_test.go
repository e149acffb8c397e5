package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/linearcli/linearcli/internal/linear"
)

func TestBulkUpdateStateKeepsInputOrder(t *testing.T) {
	api := &fakeAPI{}
	deps, stdout, _ := testDeps(t, api)

	args := []string{"bulk", "update-state", "ENG-3", "ENG-1", "ENG-2",
		"--state", "Done", "--team", "ENG", "-o", "json", "--api-key", "k"}
	if code := ExecuteWith(deps, args); code != exitSuccess {
		t.Fatalf("exit = %d", code)
	}

	var results []map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &results); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	want := []string{"ENG-3", "ENG-1", "ENG-2"}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i, ref := range want {
		if results[i]["ref"] != ref {
			t.Errorf("result[%d].ref = %v, want %s", i, results[i]["ref"], ref)
		}
		if results[i]["ok"] != true {
			t.Errorf("result[%d] not ok: %v", i, results[i])
		}
	}
}

func TestBulkRefsFromStdin(t *testing.T) {
	api := &fakeAPI{}
	deps, stdout, _ := testDeps(t, api)
	deps.In = strings.NewReader("ENG-1\n\nENG-2\n")

	args := []string{"bulk", "assign", "-", "--assignee", "me", "-o", "json", "--api-key", "k"}
	if code := ExecuteWith(deps, args); code != exitSuccess {
		t.Fatalf("exit = %d", code)
	}
	var results []map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &results); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
}

func TestBulkInvalidRefAbortsWithoutCalls(t *testing.T) {
	api := &fakeAPI{}
	deps, _, stderr := testDeps(t, api)

	args := []string{"bulk", "unassign", "ENG-1", "not a ref", "--api-key", "k"}
	code := ExecuteWith(deps, args)
	if code != exitGeneral {
		t.Fatalf("exit = %d, want %d", code, exitGeneral)
	}
	if len(api.updated) != 0 {
		t.Errorf("issues were updated despite invalid input: %v", api.updated)
	}
	if !strings.Contains(stderr.String(), "not a ref") {
		t.Errorf("message does not name the bad token: %q", stderr.String())
	}
}

func TestBulkPartialFailureUsesWorstExitCode(t *testing.T) {
	api := &fakeAPI{
		resolveErr: map[string]error{
			"ENG-2": fmt.Errorf("issue: %w", linear.ErrNotFound),
		},
	}
	deps, stdout, _ := testDeps(t, api)

	args := []string{"bulk", "unassign", "ENG-1", "ENG-2", "ENG-3", "-o", "json", "--api-key", "k"}
	code := ExecuteWith(deps, args)
	if code != exitNotFound {
		t.Fatalf("exit = %d, want %d", code, exitNotFound)
	}

	var results []map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &results); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if results[1]["ok"] != false {
		t.Errorf("failed issue reported ok: %v", results[1])
	}
	if results[0]["ok"] != true || results[2]["ok"] != true {
		t.Errorf("other issues did not complete: %v", results)
	}
}

func TestBulkAuthFailureOutranksNotFound(t *testing.T) {
	api := &fakeAPI{
		resolveErr: map[string]error{
			"ENG-1": fmt.Errorf("issue: %w", linear.ErrNotFound),
			"ENG-2": linear.ErrUnauthorized,
		},
	}
	deps, _, _ := testDeps(t, api)
	args := []string{"bulk", "unassign", "ENG-1", "ENG-2", "-o", "json", "--api-key", "k"}
	if code := ExecuteWith(deps, args); code != exitAuth {
		t.Fatalf("exit = %d, want %d", code, exitAuth)
	}
}

func TestBulkConcurrencyCapped(t *testing.T) {
	api := &fakeAPI{}
	deps, _, _ := testDeps(t, api)

	args := []string{"bulk", "unassign"}
	for i := 1; i <= 40; i++ {
		args = append(args, fmt.Sprintf("ENG-%d", i))
	}
	args = append(args, "-o", "json", "--api-key", "k")
	if code := ExecuteWith(deps, args); code != exitSuccess {
		t.Fatalf("exit = %d", code)
	}

	if api.maxInFlight > bulkConcurrency {
		t.Errorf("max in-flight updates = %d, cap is %d", api.maxInFlight, bulkConcurrency)
	}
	if len(api.updated) != 40 {
		t.Errorf("updated %d issues, want 40", len(api.updated))
	}
}

func TestBulkDryRunTouchesNothing(t *testing.T) {
	api := &fakeAPI{}
	deps, stdout, _ := testDeps(t, api)

	args := []string{"bulk", "update-state", "ENG-1", "ENG-2",
		"--state", "Done", "--team", "ENG", "--dry-run", "--api-key", "k"}
	if code := ExecuteWith(deps, args); code != exitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if len(api.updated) != 0 {
		t.Errorf("dry-run updated issues: %v", api.updated)
	}
	if !strings.Contains(stdout.String(), "dry-run") {
		t.Errorf("dry-run printed nothing useful: %q", stdout.String())
	}
}

func TestBulkIDOnly(t *testing.T) {
	api := &fakeAPI{}
	deps, stdout, _ := testDeps(t, api)

	args := []string{"bulk", "unassign", "ENG-1", "ENG-2", "--id-only", "--api-key", "k"}
	if code := ExecuteWith(deps, args); code != exitSuccess {
		t.Fatalf("exit = %d", code)
	}
	var lines []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) != 2 || lines[0] != "ENG-1" || lines[1] != "ENG-2" {
		t.Errorf("id-only output = %q", stdout.String())
	}
}
