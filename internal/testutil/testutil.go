// Package testutil provides test utilities for command and integration tests
package testutil

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/edge-node/edge-launcher/internal/app"
	"github.com/edge-node/edge-launcher/internal/config"
	"github.com/edge-node/edge-launcher/internal/system"
)

// IndexServer is a fake index API serving the embedded fixtures.
type IndexServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string
}

// Requests returns the request paths seen so far.
func (s *IndexServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// NewIndexServer starts a fake index API. Known identifiers are served from
// fixtures; anything else gets the error fixture with status 200, matching
// the real API.
func NewIndexServer(t testing.TB) *IndexServer {
	t.Helper()

	routes := map[string]string{
		"/session/" + NodeAddress:        "session.json",
		"/stake/" + StakeID:              "stake.json",
		"/transactions/" + WalletAddress: "transactions.json",
		"/snapshots/" + NodeAddress:      "snapshots.json",
	}

	s := &IndexServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.URL.Path)
		s.mu.Unlock()

		name, ok := routes[r.URL.Path]
		if !ok {
			name = "error.json"
		}
		data, err := LoadFixture(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}))
	t.Cleanup(s.Close)
	return s
}

// EdgeBinary is the fake Edge CLI served by FilesServer.
var EdgeBinary = []byte("#!/bin/sh\necho edge\n")

// FilesServer is a fake Edge CLI download host. Any path ending in
// /checksum gets the SHA-256 of Binary; every other path gets Binary.
type FilesServer struct {
	*httptest.Server

	mu       sync.Mutex
	Binary   []byte
	checksum string
}

// Checksum returns the published checksum.
func (s *FilesServer) Checksum() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checksum != "" {
		return s.checksum
	}
	sum := sha256.Sum256(s.Binary)
	return hex.EncodeToString(sum[:])
}

// PublishChecksum overrides the published checksum.
func (s *FilesServer) PublishChecksum(sum string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checksum = sum
}

// NewFilesServer starts a fake download host serving binary.
func NewFilesServer(t testing.TB, binary []byte) *FilesServer {
	t.Helper()

	s := &FilesServer{Binary: binary}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/checksum") {
			_, _ = w.Write([]byte(s.Checksum() + "\n"))
			return
		}
		s.mu.Lock()
		data := s.Binary
		s.mu.Unlock()
		_, _ = w.Write(data)
	}))
	t.Cleanup(s.Close)
	return s
}

// TestEnv holds the test environment
type TestEnv struct {
	T      *testing.T
	TmpDir string
	Paths  *config.Paths
	Exec   *system.MockExecutor
	FS     *system.MockFS
	Index  *IndexServer
	Files  *FilesServer
	App    *app.App

	cleanup func()
}

// NewTestEnv creates a test environment with a mock executor, a mock file
// system, a fake index API and a fake download host, and installs it as
// app.Default.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()
	paths := config.NewPaths(tmpDir)

	mockExec := system.NewMockExecutor()
	mockFS := system.NewMockFS()
	index := NewIndexServer(t)
	files := NewFilesServer(t, EdgeBinary)

	testApp := app.New(
		app.WithPaths(paths),
		app.WithExecutor(mockExec),
		app.WithFS(mockFS),
		app.WithHTTPClient(index.Client()),
		app.WithIndexURL(index.URL),
		app.WithFilesURL(files.URL),
	)

	// Save original default and set test app
	originalDefault := app.Default
	app.SetDefault(testApp)

	env := &TestEnv{
		T:      t,
		TmpDir: tmpDir,
		Paths:  paths,
		Exec:   mockExec,
		FS:     mockFS,
		Index:  index,
		Files:  files,
		App:    testApp,
		cleanup: func() {
			app.SetDefault(originalDefault)
		},
	}
	t.Cleanup(env.Cleanup)

	return env
}

// Cleanup restores the original app default
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
	}
}

// WriteConfig saves cfg to the environment's data directory.
func (e *TestEnv) WriteConfig(cfg *config.LauncherConfig) {
	e.T.Helper()
	if err := config.Save(e.Paths, cfg); err != nil {
		e.T.Fatalf("Failed to write config: %v", err)
	}
}

// Config loads the environment's config.
func (e *TestEnv) Config() *config.LauncherConfig {
	e.T.Helper()
	cfg, err := config.Load(e.Paths)
	if err != nil {
		e.T.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// ConfigureNode writes a mainnet config for NodeAddress owned by WalletAddress.
func (e *TestEnv) ConfigureNode() *config.LauncherConfig {
	e.T.Helper()
	cfg := NodeConfig()
	e.WriteConfig(cfg)
	return cfg
}

// NodeConfig returns a configured mainnet launcher config.
func NodeConfig() *config.LauncherConfig {
	cfg := config.Default()
	cfg.Initialized = true
	cfg.Network = config.NetworkMainnet
	cfg.Address = NodeAddress
	cfg.WalletAddress = WalletAddress
	cfg.PrivateKey = "0b4f2b1c5d6e7f8091a2b3c4d5e6f708192a3b4c5d6e7f8091a2b3c4d5e6f708"
	cfg.PublicKey = "03f1e2d3c4b5a6978877665544332211ffeeddccbbaa99887766554433221100aa"
	return cfg
}

// InstallEdge writes EdgeBinary into the data directory as name and
// returns its path.
func (e *TestEnv) InstallEdge(name string) string {
	e.T.Helper()
	path, err := e.Paths.File(name)
	if err != nil {
		e.T.Fatalf("Failed to resolve %s: %v", name, err)
	}
	if err := os.MkdirAll(e.Paths.DataDir, 0700); err != nil {
		e.T.Fatalf("Failed to create data dir: %v", err)
	}
	if err := os.WriteFile(path, EdgeBinary, 0755); err != nil {
		e.T.Fatalf("Failed to write edge binary: %v", err)
	}
	return path
}
