package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/linearcli/linearcli/internal/linear"
)

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitSuccess},
		{"not found", linear.ErrNotFound, exitNotFound},
		{"wrapped not found", fmt.Errorf("issue: %w", linear.ErrNotFound), exitNotFound},
		{"unauthorized", linear.ErrUnauthorized, exitAuth},
		{"rate limited sentinel", linear.ErrRateLimited, exitRateLimited},
		{"rate limit error value", &linear.RateLimitError{RetryAfter: 5}, exitRateLimited},
		{"invalid reference", &invalidReferenceError{Token: "x"}, exitGeneral},
		{"flag combination", ErrInvalidFlagCombination, exitGeneral},
		{"anything else", errors.New("boom"), exitGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapErrorToExitCode(tt.err); got != tt.want {
				t.Errorf("mapErrorToExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
			// Deterministic: same input, same answer.
			if got := mapErrorToExitCode(tt.err); got != tt.want {
				t.Errorf("second call differed for %v", tt.err)
			}
		})
	}
}

func TestWriteErrorEnvelope(t *testing.T) {
	var buf bytes.Buffer
	writeErrorEnvelope(&buf, &invalidReferenceError{Token: "nope"}, exitGeneral)

	var envelope map[string]any
	if err := json.Unmarshal(buf.Bytes(), &envelope); err != nil {
		t.Fatalf("envelope is not valid JSON: %v\n%s", err, buf.String())
	}
	if envelope["error"] != true {
		t.Error("error field is not true")
	}
	if envelope["code"] != float64(exitGeneral) {
		t.Errorf("code = %v, want %d", envelope["code"], exitGeneral)
	}
	details, ok := envelope["details"].(map[string]any)
	if !ok || details["token"] != "nope" {
		t.Errorf("details = %v, want token 'nope'", envelope["details"])
	}
}

func TestWriteErrorEnvelopeRetryAfter(t *testing.T) {
	var buf bytes.Buffer
	err := fmt.Errorf("request failed: %w", &linear.RateLimitError{RetryAfter: 30})
	writeErrorEnvelope(&buf, err, exitRateLimited)

	var envelope map[string]any
	if jsonErr := json.Unmarshal(buf.Bytes(), &envelope); jsonErr != nil {
		t.Fatalf("envelope is not valid JSON: %v", jsonErr)
	}
	if envelope["retry_after"] != float64(30) {
		t.Errorf("retry_after = %v, want 30", envelope["retry_after"])
	}
	if envelope["code"] != float64(exitRateLimited) {
		t.Errorf("code = %v, want %d", envelope["code"], exitRateLimited)
	}
}
