package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

type outputMode string

const (
	modeHuman  outputMode = "human"
	modeJSON   outputMode = "json"
	modeNDJSON outputMode = "ndjson"
)

type output struct {
	Out        io.Writer
	Mode       outputMode
	Compact    bool
	Fields     []string
	Sort       string
	Descending bool
	Quiet      bool
	IDOnly     bool
	NoColor    bool
}

// newOutput validates flag combinations and fixes the effective mode.
// Precedence for the mode itself (flag > LINEAR_CLI_OUTPUT > human) is
// handled by the parser's env-backed default.
func newOutput(out io.Writer, global *GlobalOptions) (output, error) {
	mode := outputMode(global.Output)
	if mode == modeHuman {
		if global.Compact {
			return output{}, fmt.Errorf("%w: --compact requires --output json or ndjson", ErrInvalidFlagCombination)
		}
		if global.Fields != "" {
			return output{}, fmt.Errorf("%w: --fields requires --output json or ndjson", ErrInvalidFlagCombination)
		}
	}
	return output{
		Out:        out,
		Mode:       mode,
		Compact:    global.Compact,
		Fields:     splitComma(global.Fields),
		Sort:       global.Sort,
		Descending: global.Order == "desc",
		Quiet:      global.Quiet,
		IDOnly:     global.IDOnly,
		NoColor:    global.NoColor,
	}, nil
}

func (o output) Structured() bool {
	return o.Mode == modeJSON || o.Mode == modeNDJSON
}

// Print writes v in the structured mode: pretty or compact JSON, or one
// record per line for ndjson. Sort and field selection apply first.
func (o output) Print(v any) error {
	value, err := toJSONValue(v)
	if err != nil {
		return err
	}
	if items, ok := value.([]any); ok && o.Sort != "" {
		sortValues(items, o.Sort, o.Descending)
	}
	if len(o.Fields) > 0 {
		value = selectFields(value, o.Fields)
	}

	if o.Mode == modeNDJSON {
		items, ok := value.([]any)
		if !ok {
			items = []any{value}
		}
		enc := json.NewEncoder(o.Out)
		for _, item := range items {
			if err := enc.Encode(item); err != nil {
				return err
			}
		}
		return nil
	}

	enc := json.NewEncoder(o.Out)
	if !o.Compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(value)
}

func (o output) PrintTable(headers []string, rows [][]string) error {
	w := tabwriter.NewWriter(o.Out, 0, 0, 2, ' ', 0)
	if len(headers) > 0 && !o.Quiet {
		fmt.Fprintln(w, o.headerStyle().Render(joinRow(headers)))
	}
	for _, row := range rows {
		fmt.Fprintln(w, joinRow(row))
	}
	return w.Flush()
}

// Header prints a decorated section heading, skipped in quiet mode.
func (o output) Header(text string) {
	if o.Quiet {
		return
	}
	_, _ = fmt.Fprintln(o.Out, o.headerStyle().Render(text))
}

// Infof prints a non-essential status line, skipped in quiet mode.
func (o output) Infof(format string, args ...any) {
	if o.Quiet {
		return
	}
	_, _ = fmt.Fprintf(o.Out, format+"\n", args...)
}

func (o output) headerStyle() lipgloss.Style {
	if o.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Bold(true)
}

// priorityLabel renders Linear's 0-4 priority scale for human output.
func (o output) priorityLabel(priority int) string {
	label, style := priorityText(priority)
	if o.NoColor {
		return label
	}
	return style.Render(label)
}

func priorityText(priority int) (string, lipgloss.Style) {
	switch priority {
	case 1:
		return "Urgent", lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case 2:
		return "High", lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case 3:
		return "Normal", lipgloss.NewStyle()
	case 4:
		return "Low", lipgloss.NewStyle().Faint(true)
	default:
		return "-", lipgloss.NewStyle()
	}
}

func joinRow(cols []string) string {
	return strings.Join(cols, "\t")
}

func splitComma(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
