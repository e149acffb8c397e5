package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/linearcli/linearcli/internal/config"
	"github.com/linearcli/linearcli/internal/linear"
)

// fakeAPI implements the slice of linear.API the tests exercise. The
// embedded interface keeps it compiling as the surface grows; calling an
// unconfigured method panics, which is the failure we want in a test.
type fakeAPI struct {
	linear.API

	mu sync.Mutex

	teams        []linear.Team
	teamsErr     error
	me           linear.User
	issuePage    linear.IssuePage
	issueErr     error
	detail       linear.IssueDetail
	detailErr    error
	issueLookups []string
	favorites    []linear.Favorite
	updated      []string
	updateErr    map[string]error
	resolveErr   map[string]error

	inFlight    int
	maxInFlight int
}

func (f *fakeAPI) Teams(ctx context.Context) ([]linear.Team, error) {
	return f.teams, f.teamsErr
}

func (f *fakeAPI) Me(ctx context.Context) (linear.User, error) {
	return f.me, nil
}

func (f *fakeAPI) Issues(ctx context.Context, filter linear.IssueFilter, limit int, after string) (linear.IssuePage, error) {
	return f.issuePage, f.issueErr
}

func (f *fakeAPI) Issue(ctx context.Context, value string) (linear.IssueDetail, error) {
	f.mu.Lock()
	f.issueLookups = append(f.issueLookups, value)
	f.mu.Unlock()
	return f.detail, f.detailErr
}

func (f *fakeAPI) Favorites(ctx context.Context, limit int) ([]linear.Favorite, error) {
	return f.favorites, nil
}

func (f *fakeAPI) ResolveTeamID(ctx context.Context, keyOrID string) (string, error) {
	return "team-" + keyOrID, nil
}

func (f *fakeAPI) ResolveStateID(ctx context.Context, teamID, value string) (string, error) {
	return "state-" + value, nil
}

func (f *fakeAPI) ResolveUserID(ctx context.Context, value string) (string, error) {
	return "user-" + value, nil
}

func (f *fakeAPI) ResolveIssueID(ctx context.Context, value string) (string, error) {
	f.mu.Lock()
	err := f.resolveErr[value]
	f.mu.Unlock()
	if err != nil {
		return "", err
	}
	return "id-" + value, nil
}

func (f *fakeAPI) IssueUpdate(ctx context.Context, input map[string]any) (linear.IssueSummary, error) {
	id, _ := input["id"].(string)

	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	err := f.updateErr[id]
	f.mu.Unlock()

	// Let other workers start so the concurrency ceiling is observable.
	time.Sleep(2 * time.Millisecond)

	f.mu.Lock()
	f.inFlight--
	if err == nil {
		f.updated = append(f.updated, id)
	}
	f.mu.Unlock()

	if err != nil {
		return linear.IssueSummary{}, err
	}
	return linear.IssueSummary{ID: id, Identifier: identifierFor(id)}, nil
}

func identifierFor(id string) string {
	const prefix = "id-"
	if len(id) > len(prefix) && id[:len(prefix)] == prefix {
		return id[len(prefix):]
	}
	return id
}

// testDeps wires a Dependencies around the fake with buffered streams and a
// throwaway config file.
func testDeps(t *testing.T, api linear.API) (Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	deps := Dependencies{
		In:      bytes.NewReader(nil),
		Out:     &stdout,
		Err:     &stderr,
		Now:     func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
		Config:  config.NewStore(t.TempDir() + "/config.toml"),
		DataDir: t.TempDir(),
		NewClient: func(token string, timeout time.Duration) linear.API {
			return api
		},
	}
	return deps, &stdout, &stderr
}
