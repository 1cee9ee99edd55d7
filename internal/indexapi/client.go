package indexapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/edge-node/edge-launcher/internal/keypath"
	"github.com/edge-node/edge-launcher/internal/logging"
)

const (
	MainnetURL = "https://index.xe.network"
	TestnetURL = "https://index.test.network"

	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "edge-launcher"

	// maxBodySize caps how much of a response is read.
	maxBodySize = 16 << 20
)

// Kind selects an index API collection.
type Kind string

const (
	KindSession      Kind = "session"
	KindStake        Kind = "stake"
	KindSnapshots    Kind = "snapshots"
	KindTransactions Kind = "transactions"
)

// Kinds lists the supported collections.
func Kinds() []Kind {
	return []Kind{KindSession, KindStake, KindSnapshots, KindTransactions}
}

// ParseKind validates s as a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown index API kind %q (must be session, stake, snapshots or transactions)", s)
}

// BaseURLFor returns the index API base URL of network.
func BaseURLFor(network string) (string, error) {
	switch network {
	case "mainnet":
		return MainnetURL, nil
	case "testnet":
		return TestnetURL, nil
	default:
		return "", fmt.Errorf("unknown network %q (must be mainnet or testnet)", network)
	}
}

// StatusError is returned when the index API answers with a non-2xx status.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("index API returned status %d for %s", e.Code, e.URL)
}

// APIError is returned when the response body carries an "error" key.
type APIError struct {
	Message string
	URL     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("index API error for %s: %s (did you enter a valid XE address or stake?)", e.URL, e.Message)
}

// Document is a decoded index API response.
type Document map[string]any

// Lookup resolves a colon-delimited key path against the document.
func (d Document) Lookup(path string) (string, error) {
	return keypath.Resolve(d, path)
}

// Client talks to the XE index API.
type Client struct {
	BaseURL   string
	HTTP      *http.Client
	UserAgent string

	// CacheDir, when set, receives the raw body of every successful
	// response as <kind>.json.
	CacheDir string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.HTTP = c
	}
}

// WithBaseURL overrides the network's base URL.
func WithBaseURL(u string) Option {
	return func(cl *Client) {
		cl.BaseURL = u
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.UserAgent = ua
	}
}

// WithCacheDir enables the raw-body cache.
func WithCacheDir(dir string) Option {
	return func(cl *Client) {
		cl.CacheDir = dir
	}
}

// New creates a client for network ("mainnet" or "testnet"). A base URL
// given with WithBaseURL makes the network irrelevant.
func New(network string, opts ...Option) (*Client, error) {
	c := &Client{UserAgent: DefaultUserAgent}
	for _, opt := range opts {
		opt(c)
	}

	if c.BaseURL == "" {
		base, err := BaseURLFor(network)
		if err != nil {
			return nil, err
		}
		c.BaseURL = base
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if c.HTTP == nil {
		c.HTTP = &http.Client{Timeout: DefaultTimeout}
	}

	return c, nil
}

// URL returns the request URL for id in collection kind.
func (c *Client) URL(kind Kind, id string) string {
	return c.BaseURL + "/" + string(kind) + "/" + url.PathEscape(id)
}

// FetchRaw downloads the body for id in collection kind.
func (c *Client) FetchRaw(ctx context.Context, kind Kind, id string) ([]byte, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("empty %s id", kind)
	}

	u := c.URL(kind, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	logging.Debug("index API request", "url", u)
	start := time.Now()

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", u, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u, err)
	}

	logging.Debug("index API response",
		"url", u,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, URL: u}
	}

	if msg, ok := errorMessage(body); ok {
		return nil, &APIError{Message: msg, URL: u}
	}

	if c.CacheDir != "" {
		if err := c.writeCache(kind, body); err != nil {
			logging.Debug("failed to cache index API response", "kind", kind, "error", err)
		}
	}

	return body, nil
}

// Fetch downloads and decodes the document for id in collection kind.
func (c *Client) Fetch(ctx context.Context, kind Kind, id string) (Document, error) {
	body, err := c.FetchRaw(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	doc, err := keypath.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s response: %w", kind, err)
	}
	return Document(doc), nil
}

// Session fetches the session of a node address.
func (c *Client) Session(ctx context.Context, nodeAddress string) (Document, error) {
	return c.Fetch(ctx, KindSession, nodeAddress)
}

// Stake fetches a stake by its hash.
func (c *Client) Stake(ctx context.Context, stake string) (Document, error) {
	return c.Fetch(ctx, KindStake, stake)
}

// Snapshots fetches the snapshots of a node address.
func (c *Client) Snapshots(ctx context.Context, nodeAddress string) (Document, error) {
	return c.Fetch(ctx, KindSnapshots, nodeAddress)
}

// Transactions fetches the transactions of an XE address.
func (c *Client) Transactions(ctx context.Context, address string) (Document, error) {
	return c.Fetch(ctx, KindTransactions, address)
}

// CachedDocument reads the last cached body of kind.
func (c *Client) CachedDocument(kind Kind) (Document, error) {
	if c.CacheDir == "" {
		return nil, fmt.Errorf("no cache directory configured")
	}
	path, err := securejoin.SecureJoin(c.CacheDir, string(kind)+".json")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cached %s: %w", kind, err)
	}
	doc, err := keypath.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode cached %s: %w", kind, err)
	}
	return Document(doc), nil
}

func (c *Client) writeCache(kind Kind, body []byte) error {
	if err := os.MkdirAll(c.CacheDir, 0700); err != nil {
		return err
	}
	path, err := securejoin.SecureJoin(c.CacheDir, string(kind)+".json")
	if err != nil {
		return err
	}
	return os.WriteFile(path, body, 0600)
}

// errorMessage reports the top-level "error" value of body. Any value,
// including null and false, marks the document as an error response.
func errorMessage(body []byte) (string, bool) {
	value, dataType, _, err := jsonparser.Get(body, "error")
	if err != nil {
		return "", false
	}

	switch dataType {
	case jsonparser.NotExist:
		return "", false
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return string(value), true
		}
		return s, true
	case jsonparser.Object:
		if s, err := jsonparser.GetString(value, "message"); err == nil {
			return s, true
		}
	}
	return string(value), true
}
