package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/linearcli/linearcli/internal/linear"
)

// Exit statuses. The mapping from classified errors is total: anything the
// taxonomy does not name exits with the general code.
const (
	exitSuccess     = 0
	exitGeneral     = 1
	exitNotFound    = 2
	exitAuth        = 3
	exitRateLimited = 4
)

// Router-level failures. These are reported before any collaborator call
// and always exit with the general code.
var (
	ErrInvalidReference       = errors.New("invalid issue reference")
	ErrInvalidFlagCombination = errors.New("invalid flag combination")
)

// invalidReferenceError names the offending token so the structured error
// envelope can carry it in details.
type invalidReferenceError struct {
	Token string
}

func (e *invalidReferenceError) Error() string {
	return fmt.Sprintf("invalid issue reference %q", e.Token)
}

func (e *invalidReferenceError) Is(target error) bool { return target == ErrInvalidReference }

func (e *invalidReferenceError) details() map[string]any {
	return map[string]any{"token": e.Token}
}

func mapErrorToExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	switch {
	case errors.Is(err, linear.ErrNotFound):
		return exitNotFound
	case errors.Is(err, linear.ErrUnauthorized):
		return exitAuth
	case errors.Is(err, linear.ErrRateLimited):
		return exitRateLimited
	default:
		return exitGeneral
	}
}

// errorEnvelope is the machine-readable failure shape written to stderr in
// json and ndjson modes.
type errorEnvelope struct {
	Error      bool           `json:"error"`
	Message    string         `json:"message"`
	Code       int            `json:"code"`
	Details    map[string]any `json:"details,omitempty"`
	RetryAfter int            `json:"retry_after,omitempty"`
}

func writeErrorEnvelope(w io.Writer, err error, code int) {
	envelope := errorEnvelope{
		Error:   true,
		Message: err.Error(),
		Code:    code,
	}
	var detailed interface{ details() map[string]any }
	if errors.As(err, &detailed) {
		envelope.Details = detailed.details()
	}
	var rle *linear.RateLimitError
	if errors.As(err, &rle) {
		envelope.RetryAfter = rle.RetryAfter
	}
	data, marshalErr := json.Marshal(envelope)
	if marshalErr != nil {
		_, _ = fmt.Fprintf(w, "%v\n", err)
		return
	}
	_, _ = w.Write(append(data, '\n'))
}
