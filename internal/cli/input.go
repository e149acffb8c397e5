package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// readOptionalBody resolves a text flag that accepts "-" for piped input.
func readOptionalBody(flagValue string, r io.Reader) (string, error) {
	if flagValue == "" {
		return "", nil
	}
	if flagValue != stdinPlaceholder {
		return flagValue, nil
	}
	reader := bufio.NewReader(r)
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func uniqueStrings(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

// looksLikeUUID reports whether s has the shape of a Linear UUID. Used
// to decide between treating an argument as an ID or a name.
func looksLikeUUID(s string) bool {
	return len(s) == 36 && strings.Count(s, "-") == 4
}
