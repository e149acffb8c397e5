package linear

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testClient(url string, retries uint64) *Client {
	return &Client{
		apiURL:  url,
		token:   "lin_api_test",
		retries: retries,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

func gqlData(t *testing.T, w http.ResponseWriter, data string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write([]byte(`{"data":` + data + `}`)); err != nil {
		t.Fatalf("write response: %v", err)
	}
}

func TestMe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "lin_api_test" {
			t.Errorf("Authorization = %q", got)
		}
		var req gqlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gqlData(t, w, `{"viewer":{"id":"u1","name":"Ada","email":"ada@example.com"}}`)
	}))
	defer srv.Close()

	me, err := testClient(srv.URL, 0).Me(context.Background())
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if me.Name != "Ada" || me.ID != "u1" {
		t.Errorf("me = %+v", me)
	}
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrUnauthorized},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"too many requests", http.StatusTooManyRequests, ErrRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := testClient(srv.URL, 0).Me(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGatewayErrorsStayUnclassified(t *testing.T) {
	// Only 429 is a rate limit; a persistent gateway failure must exit as a
	// general error, not borrow the rate-limit code.
	for _, status := range []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := testClient(srv.URL, 0).Me(context.Background())
		srv.Close()
		if err == nil {
			t.Fatalf("status %d: expected error", status)
		}
		if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnauthorized) {
			t.Errorf("status %d matched a sentinel: %v", status, err)
		}
	}
}

func TestRetryOnGatewayErrorThenSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("waits out a retry delay")
	}
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		gqlData(t, w, `{"viewer":{"id":"u1","name":"Ada","email":"a@x"}}`)
	}))
	defer srv.Close()

	me, err := testClient(srv.URL, 2).Me(context.Background())
	if err != nil {
		t.Fatalf("Me after retry: %v", err)
	}
	if me.ID != "u1" {
		t.Errorf("me = %+v", me)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestRateLimitCarriesRetryAfter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "42")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 0).Me(context.Background())
	var rle *RateLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("error = %v, want *RateLimitError", err)
	}
	if rle.RetryAfter != 42 {
		t.Errorf("RetryAfter = %d, want 42", rle.RetryAfter)
	}
}

func TestRetryAfterRateLimitThenSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("waits out a retry delay")
	}
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		gqlData(t, w, `{"viewer":{"id":"u1","name":"Ada","email":"a@x"}}`)
	}))
	defer srv.Close()

	me, err := testClient(srv.URL, 2).Me(context.Background())
	if err != nil {
		t.Fatalf("Me after retry: %v", err)
	}
	if me.ID != "u1" {
		t.Errorf("me = %+v", me)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestNoRetryOnPermanentError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 3).Me(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("error = %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1 (auth errors must not retry)", got)
	}
}

func TestClassifyGQL(t *testing.T) {
	tests := []struct {
		message string
		want    error
	}{
		{"Entity not found: Issue", ErrNotFound},
		{"issue does not exist", ErrNotFound},
		{"Authentication required", ErrUnauthorized},
		{"invalid api key", ErrUnauthorized},
		{"Rate limit exceeded", ErrRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			err := classifyGQL(gqlErrors{Errors: []gqlError{{Message: tt.message}}})
			if !errors.Is(err, tt.want) {
				t.Errorf("classifyGQL(%q) = %v, want %v", tt.message, err, tt.want)
			}
		})
	}

	err := classifyGQL(gqlErrors{Errors: []gqlError{{Message: "something odd"}}})
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrRateLimited) {
		t.Errorf("unclassified message matched a sentinel: %v", err)
	}
}

func TestGQLErrorClassifiedAcrossLayers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errors":[{"message":"Entity not found: Team"}]}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 0).Team(context.Background(), "NOPE")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"lin_api_abc", "lin_api_abc"},
		{"  lin_api_abc  ", "lin_api_abc"},
		{"Bearer lin_api_abc", "lin_api_abc"},
		{"bearer lin_api_abc", "lin_api_abc"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeToken(tt.in); got != tt.want {
			t.Errorf("normalizeToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsUUID(t *testing.T) {
	if !isUUID("123e4567-e89b-12d3-a456-426614174000") {
		t.Error("valid uuid rejected")
	}
	if isUUID("ENG") || isUUID("ENG-123") {
		t.Error("non-uuid accepted")
	}
}
