package cli

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitCommandLine(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"issues list", []string{"issues", "list"}},
		{`issues create --title "two words"`, []string{"issues", "create", "--title", "two words"}},
		{`comments create ENG-1 'it works'`, []string{"comments", "create", "ENG-1", "it works"}},
		{"  spaced   out  ", []string{"spaced", "out"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := splitCommandLine(tt.in)
			if err != nil {
				t.Fatalf("splitCommandLine: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := splitCommandLine(`issues create --title "unterminated`); err == nil {
		t.Error("unterminated quote accepted")
	}
}

func TestInteractivePipedSession(t *testing.T) {
	deps, stdout, _ := testDeps(t, &fakeAPI{teams: sampleTeams()})
	deps.In = strings.NewReader("teams list --api-key k --id-only\nexit\nteams list\n")

	code := ExecuteWith(deps, []string{"interactive", "--no-input"})
	if code != exitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(stdout.String(), "t1") {
		t.Errorf("session did not run the command: %q", stdout.String())
	}
	// The line after exit must not run.
	if strings.Count(stdout.String(), "t1") != 1 {
		t.Errorf("commands ran after exit: %q", stdout.String())
	}
}

func TestInteractiveRejectsNesting(t *testing.T) {
	deps, _, stderr := testDeps(t, &fakeAPI{})
	deps.In = strings.NewReader("interactive\n")

	if code := ExecuteWith(deps, []string{"ui", "--no-input"}); code != exitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(stderr.String(), "interactive") {
		t.Errorf("nesting not rejected: %q", stderr.String())
	}
}
