package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/linearcli/linearcli/internal/config"
	"github.com/linearcli/linearcli/internal/linear"
)

// Dependencies carries everything with an external effect so commands stay
// testable: streams, the clock, the config store, the API client factory,
// and the runner used for git/gh subprocesses.
type Dependencies struct {
	In        io.Reader
	Out       io.Writer
	Err       io.Writer
	Now       func() time.Time
	Config    *config.Store
	DataDir   string
	NewClient func(token string, timeout time.Duration) linear.API
	Exec      CommandRunner
}

// CommandRunner executes an external command and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

type GlobalOptions struct {
	Output  string        `short:"o" help:"Output format" enum:"human,json,ndjson" env:"LINEAR_CLI_OUTPUT" default:"human"`
	Compact bool          `help:"Minified structured output (json/ndjson only)"`
	Fields  string        `help:"Comma-separated fields to keep in structured output; dot paths allowed"`
	Sort    string        `help:"Field to sort list output by"`
	Order   string        `help:"Sort direction" enum:"asc,desc" default:"asc"`
	Quiet   bool          `short:"q" help:"Suppress decorative output"`
	IDOnly  bool          `name:"id-only" help:"Only print identifiers of affected resources"`
	DryRun  bool          `name:"dry-run" help:"Show what would happen without doing it"`
	NoColor bool          `name:"no-color" help:"Disable color output"`
	NoInput bool          `name:"no-input" help:"Disable interactive prompts"`
	Timeout time.Duration `help:"API request timeout" default:"10s"`
	APIKey  string        `name:"api-key" help:"Linear API key (overrides env and stored config)"`
}

// ExitError pins a process exit status to an error. The runner unwraps it
// last, so intermediate layers must pass it through untouched.
type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit %d", e.Code)
	}
	return e.Err.Error()
}

func (e ExitError) Unwrap() error { return e.Err }

func exitError(code int, err error) error {
	if err == nil {
		return ExitError{Code: code, Err: errors.New("unknown error")}
	}
	return ExitError{Code: code, Err: err}
}
