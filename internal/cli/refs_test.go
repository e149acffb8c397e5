package cli

import (
	"errors"
	"strings"
	"testing"
)

func TestExtractIssueRefsFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"single", []string{"ENG-123"}, []string{"ENG-123"}},
		{"order preserved", []string{"ENG-2", "ENG-1", "OPS-3"}, []string{"ENG-2", "ENG-1", "OPS-3"}},
		{"case preserved", []string{"eng-123", "Eng-456"}, []string{"eng-123", "Eng-456"}},
		{"digits in team key", []string{"T2-9"}, []string{"T2-9"}},
		{"empty args", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractIssueRefs(tt.args, strings.NewReader(""))
			if err != nil {
				t.Fatalf("extractIssueRefs: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ref[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractIssueRefsInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no number", []string{"ENG-"}},
		{"no dash", []string{"ENG123"}},
		{"leading digit", []string{"1NG-12"}},
		{"trailing junk", []string{"ENG-12x"}},
		{"empty token", []string{""}},
		{"one bad among good", []string{"ENG-1", "nope", "ENG-2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractIssueRefs(tt.args, strings.NewReader(""))
			if err == nil {
				t.Fatalf("expected error, got %v", got)
			}
			if !errors.Is(err, ErrInvalidReference) {
				t.Errorf("error = %v, want ErrInvalidReference", err)
			}
			if got != nil {
				t.Errorf("partial results returned: %v", got)
			}
		})
	}
}

func TestExtractIssueRefsFromStdin(t *testing.T) {
	in := strings.NewReader("ENG-1\n\n  ENG-2  \n\nops-3\n")
	got, err := extractIssueRefs([]string{"-"}, in)
	if err != nil {
		t.Fatalf("extractIssueRefs: %v", err)
	}
	want := []string{"ENG-1", "ENG-2", "ops-3"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ref[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtractIssueRefsStdinAllOrNothing(t *testing.T) {
	in := strings.NewReader("ENG-1\nENG-2\nbogus line\n")
	got, err := extractIssueRefs([]string{"-"}, in)
	if err == nil {
		t.Fatalf("expected error, got %v", got)
	}
	if !errors.Is(err, ErrInvalidReference) {
		t.Errorf("error = %v, want ErrInvalidReference", err)
	}

	var invalid *invalidReferenceError
	if !errors.As(err, &invalid) {
		t.Fatalf("error %v does not carry the offending token", err)
	}
	if invalid.Token != "bogus line" {
		t.Errorf("token = %q, want %q", invalid.Token, "bogus line")
	}
}

func TestExtractIssueRefsDashNotAlone(t *testing.T) {
	// "-" only stands for stdin when it is the sole positional.
	if _, err := extractIssueRefs([]string{"ENG-1", "-"}, strings.NewReader("ENG-9\n")); err == nil {
		t.Fatal("expected error for '-' mixed with refs")
	}
}

func TestExtractIssueRefsIdempotent(t *testing.T) {
	args := []string{"ENG-5", "ENG-6"}
	first, err := extractIssueRefs(args, strings.NewReader(""))
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	second, err := extractIssueRefs(first, strings.NewReader(""))
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("resolution not idempotent: %v vs %v", first, second)
		}
	}
}
