package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/alecthomas/kong"

	"github.com/linearcli/linearcli/internal/config"
	"github.com/linearcli/linearcli/internal/linear"
)

func Execute() int {
	return Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func Run(args []string, in io.Reader, out io.Writer, errOut io.Writer) int {
	configPath, err := config.DefaultPath()
	if err != nil {
		_, _ = errOut.Write([]byte(err.Error() + "\n"))
		return exitGeneral
	}
	dataDir, err := config.DefaultDataDir()
	if err != nil {
		_, _ = errOut.Write([]byte(err.Error() + "\n"))
		return exitGeneral
	}

	deps := Dependencies{
		In:        in,
		Out:       out,
		Err:       errOut,
		Now:       time.Now,
		Config:    config.NewStore(configPath),
		DataDir:   dataDir,
		NewClient: linear.NewClient,
		Exec:      runCommand,
	}

	return ExecuteWith(deps, args)
}

func ExecuteWith(deps Dependencies, args []string) (code int) {
	cli := &CLI{}

	parser, err := kong.New(
		cli,
		kong.Name("linear"),
		kong.Description("Manage Linear issues, projects, and more from the terminal"),
		kong.Vars{"version": VersionOutput()},
		kong.Writers(deps.Out, deps.Err),
		kong.Exit(func(code int) { panic(exitPanic{Code: code}) }),
	)
	if err != nil {
		_, _ = deps.Err.Write([]byte(err.Error() + "\n"))
		return exitGeneral
	}

	defer func() {
		if r := recover(); r != nil {
			if exit := parseExitPanic(r); exit != nil {
				code = exit.Code
				return
			}
			panic(r)
		}
	}()

	kctx, err := parser.Parse(args)
	if err != nil {
		// Unknown verbs, unknown flags, and bad values all surface here,
		// before any collaborator is touched.
		_, _ = fmt.Fprintf(deps.Err, "%v\n", err)
		return exitGeneral
	}

	cmdCtx := &commandContext{deps: deps, global: &cli.GlobalOptions}
	cmdCtx.out, err = newOutput(deps.Out, &cli.GlobalOptions)
	if err != nil {
		return handleExit(deps, cmdCtx.out, err)
	}

	kctx.BindTo(context.Background(), (*context.Context)(nil))
	kctx.Bind(cmdCtx)

	if err := kctx.Run(); err != nil {
		return handleExit(deps, cmdCtx.out, err)
	}
	return exitSuccess
}

type exitPanic struct {
	Code int
}

func parseExitPanic(val any) *exitPanic {
	switch cast := val.(type) {
	case exitPanic:
		return &cast
	case *exitPanic:
		return cast
	default:
		return nil
	}
}

// handleExit converts an error into the process exit status, writing the
// message (or the structured error envelope) to stderr. Classification is
// total: unclassified errors exit with the general code.
func handleExit(deps Dependencies, out output, err error) int {
	if err == nil {
		return exitSuccess
	}

	code := mapErrorToExitCode(err)
	var exitErr ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
		if exitErr.Err != nil {
			err = exitErr.Err
		}
	}

	if out.Structured() {
		writeErrorEnvelope(deps.Err, err, code)
	} else {
		_, _ = fmt.Fprintf(deps.Err, "Error: %v\n", err)
	}
	return code
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = os.Stderr
	return cmd.Output()
}
