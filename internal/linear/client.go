package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrRateLimited  = errors.New("rate limited")
)

// RateLimitError carries the server-suggested wait in seconds when the
// response included a Retry-After header. errors.Is matches ErrRateLimited.
type RateLimitError struct {
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (retry after %ds)", e.RetryAfter)
	}
	return "rate limited"
}

func (e *RateLimitError) Is(target error) bool { return target == ErrRateLimited }

// transientError marks a failure worth retrying (gateway errors, transport
// hiccups) that stays unclassified: callers that exhaust retries see a
// general error, not a rate-limit one.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// API is the surface commands depend on. Tests substitute a fake.
type API interface {
	Me(ctx context.Context) (User, error)
	Teams(ctx context.Context) ([]Team, error)
	Team(ctx context.Context, keyOrID string) (Team, error)
	WorkflowStates(ctx context.Context, teamID string) ([]WorkflowState, error)

	ResolveTeamID(ctx context.Context, keyOrID string) (string, error)
	ResolveUserID(ctx context.Context, value string) (string, error)
	ResolveStateID(ctx context.Context, teamID, value string) (string, error)
	ResolveLabelIDs(ctx context.Context, labels []string) ([]string, error)
	ResolveProjectID(ctx context.Context, value string) (string, error)
	ResolveCycleID(ctx context.Context, teamID, value string) (string, error)
	ResolveIssueID(ctx context.Context, value string) (string, error)

	Issue(ctx context.Context, value string) (IssueDetail, error)
	Issues(ctx context.Context, filter IssueFilter, limit int, after string) (IssuePage, error)
	IssueCreate(ctx context.Context, input map[string]any) (IssueSummary, error)
	IssueUpdate(ctx context.Context, input map[string]any) (IssueSummary, error)
	IssueHistory(ctx context.Context, issueID string, limit int) ([]HistoryEntry, error)

	IssueComments(ctx context.Context, issueID string, limit int) ([]Comment, error)
	CommentCreate(ctx context.Context, issueID, body string) (string, error)

	IssueRelations(ctx context.Context, issueID string, limit int) (IssueRelationSet, error)
	IssueRelationCreate(ctx context.Context, issueID, relatedIssueID, relationType string) (IssueRelation, error)
	IssueRelationDelete(ctx context.Context, relationID string) error

	Projects(ctx context.Context, includeArchived bool, limit int, after string) (ProjectPage, error)
	Project(ctx context.Context, value string) (Project, error)
	ProjectCreate(ctx context.Context, input map[string]any) (Project, error)
	ProjectUpdate(ctx context.Context, id string, input map[string]any) (Project, error)
	ProjectDelete(ctx context.Context, id string) error

	Labels(ctx context.Context, teamID string, limit int) ([]Label, error)
	LabelCreate(ctx context.Context, input map[string]any) (Label, error)
	LabelDelete(ctx context.Context, id string) error

	Cycles(ctx context.Context, teamID string, current bool, limit int, after string) (CyclePage, error)
	Cycle(ctx context.Context, id string) (Cycle, error)

	SearchIssues(ctx context.Context, term string, limit int) ([]IssueSummary, error)
	SearchProjects(ctx context.Context, term string, limit int) ([]Project, error)

	Favorites(ctx context.Context, limit int) ([]Favorite, error)
	FavoriteCreate(ctx context.Context, issueID string) (Favorite, error)
	FavoriteDelete(ctx context.Context, id string) error

	Initiatives(ctx context.Context, limit int) ([]Initiative, error)
	Initiative(ctx context.Context, id string) (Initiative, error)
	Roadmaps(ctx context.Context, limit int) ([]Roadmap, error)
	Roadmap(ctx context.Context, id string) (Roadmap, error)

	Download(ctx context.Context, url string, w io.Writer) error
}

type Client struct {
	apiURL  string
	token   string
	http    *http.Client
	retries uint64
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

type gqlErrors struct {
	Errors []gqlError
}

func (e gqlErrors) Error() string {
	messages := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

const (
	defaultAPIURL = "https://api.linear.app/graphql"

	maxRetries        = 3
	initialRetryDelay = time.Second
	maxRetryDelay     = 30 * time.Second
)

func NewClient(token string, timeout time.Duration) API {
	return &Client{
		apiURL:  defaultAPIURL,
		token:   token,
		retries: maxRetries,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// serverHintBackOff defers to the wrapped policy unless the server sent a
// Retry-After, which then overrides the next computed delay.
type serverHintBackOff struct {
	backoff.BackOff
	hint *time.Duration
}

func (b *serverHintBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next == backoff.Stop {
		return backoff.Stop
	}
	if *b.hint > 0 {
		next = *b.hint
		*b.hint = 0
	}
	return next
}

// do posts one GraphQL request and decodes the data payload into out.
// Rate-limit, gateway, and transport failures are retried with exponential
// backoff and jitter; a server Retry-After overrides the computed delay.
func (c *Client) do(ctx context.Context, query string, variables map[string]any, out any) error {
	// BackOff implementations are stateful; always build a fresh instance.
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = initialRetryDelay
	exp.RandomizationFactor = 0.25
	exp.Multiplier = 2
	exp.MaxInterval = maxRetryDelay
	exp.MaxElapsedTime = 0

	var hint time.Duration
	bo := &serverHintBackOff{BackOff: backoff.WithMaxRetries(exp, c.retries), hint: &hint}

	op := func() error {
		err := c.doOnce(ctx, query, variables, out)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrRateLimited) {
			var rle *RateLimitError
			if errors.As(err, &rle) && rle.RetryAfter > 0 {
				hint = time.Duration(rle.RetryAfter) * time.Second
			}
			return err
		}
		var transient *transientError
		if errors.As(err, &transient) {
			return err
		}
		return backoff.Permanent(err)
	}
	return backoff.Retry(op, backoff.WithContext(bo, ctx))
}

func (c *Client) doOnce(ctx context.Context, query string, variables map[string]any, out any) error {
	payload, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if token := normalizeToken(c.token); token != "" {
		req.Header.Set("Authorization", token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		return &transientError{err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: retryAfterSeconds(resp)}
	case http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return &transientError{err: fmt.Errorf("server error: %s", resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var gqlResp gqlResponse
	if err := json.Unmarshal(body, &gqlResp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		return classifyGQL(gqlErrors{Errors: gqlResp.Errors})
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(gqlResp.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// classifyGQL maps GraphQL-level errors onto the sentinel taxonomy so the
// caller sees the same classification regardless of which layer failed.
func classifyGQL(errs gqlErrors) error {
	msg := strings.ToLower(errs.Error())
	switch {
	case strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist"):
		return fmt.Errorf("%w: %s", ErrNotFound, errs.Error())
	case strings.Contains(msg, "authentication") || strings.Contains(msg, "unauthorized") || strings.Contains(msg, "api key"):
		return fmt.Errorf("%w: %s", ErrUnauthorized, errs.Error())
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "ratelimit"):
		return &RateLimitError{}
	default:
		return errs
	}
}

func retryAfterSeconds(resp *http.Response) int {
	value := resp.Header.Get("Retry-After")
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}

func normalizeToken(token string) string {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(trimmed), "bearer ") {
		return strings.TrimSpace(trimmed[7:])
	}
	return trimmed
}
