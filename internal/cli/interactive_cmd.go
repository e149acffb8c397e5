package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// InteractiveCmd is a line-oriented prompt: each line goes through the same
// parser and command tree as a normal invocation. It is not a TUI.
type InteractiveCmd struct{}

func (c *InteractiveCmd) Run(cmdCtx *commandContext) error {
	stdin, isFile := cmdCtx.deps.In.(*os.File)
	interactive := isFile && term.IsTerminal(int(stdin.Fd()))
	if !interactive && !cmdCtx.global.NoInput {
		return exitError(exitGeneral, fmt.Errorf("interactive mode needs a terminal (use --no-input to pipe commands)"))
	}

	out := outputFor(cmdCtx)
	out.Infof("linear interactive session; 'exit' or ctrl-d to quit")

	scanner := bufio.NewScanner(cmdCtx.deps.In)
	for {
		if interactive && !out.Quiet {
			_, _ = fmt.Fprint(cmdCtx.deps.Out, "linear> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		args, err := splitCommandLine(line)
		if err != nil {
			_, _ = fmt.Fprintf(cmdCtx.deps.Err, "Error: %v\n", err)
			continue
		}
		if len(args) > 0 && (args[0] == "interactive" || args[0] == "ui") {
			_, _ = fmt.Fprintln(cmdCtx.deps.Err, "Error: already in an interactive session")
			continue
		}

		// Each line is a full invocation; failures print their message and
		// the session keeps going.
		ExecuteWith(cmdCtx.deps, args)
	}
	if err := scanner.Err(); err != nil {
		return exitError(exitGeneral, fmt.Errorf("read input: %w", err))
	}
	return nil
}

// splitCommandLine tokenizes a prompt line with single and double quotes.
func splitCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	inToken := false
	var quote rune

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inToken = true
		case r == ' ' || r == '\t':
			if inToken {
				args = append(args, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(r)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote")
	}
	if inToken {
		args = append(args, current.String())
	}
	return args, nil
}
