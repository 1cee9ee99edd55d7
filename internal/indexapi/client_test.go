package indexapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/edge-node/edge-launcher/internal/keypath"
	"github.com/edge-node/edge-launcher/internal/testutil"
)

func newTestClient(t *testing.T, opts ...Option) (*Client, *testutil.IndexServer) {
	t.Helper()
	srv := testutil.NewIndexServer(t)
	opts = append([]Option{WithBaseURL(srv.URL), WithHTTPClient(srv.Client())}, opts...)
	c, err := New("", opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c, srv
}

func TestNew(t *testing.T) {
	tests := []struct {
		network string
		want    string
		wantErr bool
	}{
		{"mainnet", MainnetURL, false},
		{"testnet", TestnetURL, false},
		{"devnet", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.network, func(t *testing.T) {
			c, err := New(tt.network)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			if c.BaseURL != tt.want {
				t.Errorf("BaseURL = %q, want %q", c.BaseURL, tt.want)
			}
			if c.HTTP == nil || c.HTTP.Timeout != DefaultTimeout {
				t.Error("HTTP client should default with a timeout")
			}
			if c.UserAgent != DefaultUserAgent {
				t.Errorf("UserAgent = %q", c.UserAgent)
			}
		})
	}
}

func TestNew_BaseURLOverride(t *testing.T) {
	c, err := New("not-a-network", WithBaseURL("http://localhost:9000/"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if got := c.URL(KindStake, "abc"); got != "http://localhost:9000/stake/abc" {
		t.Errorf("URL() = %q", got)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(string(k))
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %q, %v", k, got, err)
		}
	}
	if _, err := ParseKind("wallet"); err == nil {
		t.Error("ParseKind(wallet) should fail")
	}
}

func TestFetch(t *testing.T) {
	c, srv := newTestClient(t)

	doc, err := c.Session(context.Background(), testutil.NodeAddress)
	if err != nil {
		t.Fatalf("Session() error: %v", err)
	}
	got, err := doc.Lookup("node:stake")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if got != testutil.StakeID {
		t.Errorf("node:stake = %q, want %q", got, testutil.StakeID)
	}

	if reqs := srv.Requests(); len(reqs) != 1 || reqs[0] != "/session/"+testutil.NodeAddress {
		t.Errorf("requests = %v", reqs)
	}
}

func TestFetch_AllKinds(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	if _, err := c.Stake(ctx, testutil.StakeID); err != nil {
		t.Errorf("Stake() error: %v", err)
	}
	if _, err := c.Snapshots(ctx, testutil.NodeAddress); err != nil {
		t.Errorf("Snapshots() error: %v", err)
	}
	doc, err := c.Transactions(ctx, testutil.WalletAddress)
	if err != nil {
		t.Fatalf("Transactions() error: %v", err)
	}
	if _, ok := doc["results"].([]any); !ok {
		t.Errorf("results = %T, want []any", doc["results"])
	}
}

func TestFetch_APIError(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.Stake(context.Background(), "nope")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Message != "not found" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if !strings.Contains(err.Error(), "valid XE address or stake") {
		t.Errorf("error should hint at the input: %q", err)
	}
}

func TestFetch_NullErrorKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": null, "wallet": "xe_1"}`))
	}))
	defer srv.Close()

	c, err := New("", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Stake(context.Background(), "9d51f5")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Message != "null" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "null")
	}
}

func TestFetch_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, err := New("", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Session(context.Background(), "xe_1")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusServiceUnavailable {
		t.Errorf("Code = %d", statusErr.Code)
	}
	if statusErr.URL != srv.URL+"/session/xe_1" {
		t.Errorf("URL = %q", statusErr.URL)
	}
}

func TestFetch_NotAnObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1, 2, 3]`))
	}))
	defer srv.Close()

	c, _ := New("", WithBaseURL(srv.URL))
	_, err := c.Session(context.Background(), "xe_1")
	if !errors.Is(err, keypath.ErrNotATraversableObject) {
		t.Errorf("error = %v, want NotATraversableObject", err)
	}
}

func TestFetch_EmptyID(t *testing.T) {
	c, srv := newTestClient(t)

	if _, err := c.Session(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty id")
	}
	if len(srv.Requests()) != 0 {
		t.Error("empty id should not reach the server")
	}
}

func TestFetch_Headers(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, _ := New("", WithBaseURL(srv.URL), WithUserAgent("edge-launcher/test"))
	if _, err := c.Session(context.Background(), "xe_1"); err != nil {
		t.Fatal(err)
	}
	if gotUA != "edge-launcher/test" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
}

func TestFetch_ContextCanceled(t *testing.T) {
	c, _ := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Session(ctx, testutil.NodeAddress)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestFetch_Cache(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "cache")
	c, _ := newTestClient(t, WithCacheDir(cacheDir))
	ctx := context.Background()

	if _, err := c.Stake(ctx, testutil.StakeID); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(cacheDir, "stake.json"))
	if err != nil {
		t.Fatalf("cache file not written: %v", err)
	}
	if string(data) != string(testutil.MustFixture(t, "stake.json")) {
		t.Error("cached body differs from response")
	}

	doc, err := c.CachedDocument(KindStake)
	if err != nil {
		t.Fatalf("CachedDocument() error: %v", err)
	}
	if w, _ := doc.Lookup("wallet"); w != testutil.WalletAddress {
		t.Errorf("cached wallet = %q", w)
	}

	// Error responses are not cached.
	_, _ = c.Session(ctx, "nope")
	if _, err := os.Stat(filepath.Join(cacheDir, "session.json")); !os.IsNotExist(err) {
		t.Error("error response should not be cached")
	}
}

func TestCachedDocument_NoCacheDir(t *testing.T) {
	c, _ := New("mainnet")
	if _, err := c.CachedDocument(KindSession); err == nil {
		t.Error("expected error without cache dir")
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		body   string
		want   string
		wantOK bool
	}{
		{`{"error": "not found"}`, "not found", true},
		{`{"error": "bad \"id\""}`, `bad "id"`, true},
		{`{"error": {"code": 404, "message": "missing stake"}}`, "missing stake", true},
		{`{"error": {"code": 404}}`, `{"code": 404}`, true},
		{`{"error": 500}`, "500", true},
		{`{"error": true}`, "true", true},
		{`{"error": false}`, "false", true},
		{`{"error": null}`, "null", true},
		{`{"node": {"error": "nested"}}`, "", false},
		{`{"results": []}`, "", false},
		{`[1, 2]`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			got, ok := errorMessage([]byte(tt.body))
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("errorMessage() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
