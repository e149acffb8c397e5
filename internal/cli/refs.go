package cli

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
)

// stdinPlaceholder as the sole positional argument means issue references
// arrive on standard input, one per line.
const stdinPlaceholder = "-"

// Issue references look like LIN-123: a team key then a number. Matching is
// case-insensitive and the input casing is preserved. Compiled lazily so
// both call sites (positional args and piped input) share one pattern.
var issueRefPattern = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(`(?i)^[A-Z][A-Z0-9]*-[0-9]+$`)
})

// extractIssueRefs turns positional arguments (or piped lines when the sole
// argument is "-") into a validated reference list. Extraction is
// all-or-nothing: one bad token fails the whole call with zero partial
// results, and stdin is buffered completely before validation so a
// malformed later line fails before any dispatch.
func extractIssueRefs(args []string, in io.Reader) ([]string, error) {
	candidates := args
	if len(args) == 1 && args[0] == stdinPlaceholder {
		lines, err := readRefLines(in)
		if err != nil {
			return nil, err
		}
		candidates = lines
	}

	refs := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if !issueRefPattern().MatchString(candidate) {
			return nil, &invalidReferenceError{Token: candidate}
		}
		refs = append(refs, candidate)
	}
	return refs, nil
}

func readRefLines(in io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(in)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return lines, nil
}
