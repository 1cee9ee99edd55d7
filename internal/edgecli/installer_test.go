package edgecli

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

var linuxX64 = Platform{OS: "linux", Arch: "x64"}

type fileServer struct {
	*httptest.Server
	binary    []byte
	checksum  string
	downloads atomic.Int32
}

// newFileServer serves binary and its checksum under /mainnet/linux/x64/latest/.
func newFileServer(t *testing.T, binary []byte, checksum string) *fileServer {
	t.Helper()
	fs := &fileServer{binary: binary, checksum: checksum}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/mainnet/linux/x64/latest/checksum":
			_, _ = w.Write([]byte(fs.checksum + "\n"))
		case "/mainnet/linux/x64/latest/edge":
			fs.downloads.Add(1)
			_, _ = w.Write(fs.binary)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(fs.Close)
	return fs
}

func sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

func newInstaller(t *testing.T, srv *fileServer) *Installer {
	t.Helper()
	return &Installer{
		HTTP:       srv.Client(),
		BaseURL:    srv.URL,
		Network:    "mainnet",
		Platform:   linuxX64,
		BinaryPath: filepath.Join(t.TempDir(), "bin", "edge"),
	}
}

func TestFileURL(t *testing.T) {
	got := FileURL(DefaultBaseURL, "testnet", Platform{"windows", "x64"}, "latest", "edge.exe")
	want := "https://files.edge.network/cli/testnet/windows/x64/latest/edge.exe"
	if got != want {
		t.Errorf("FileURL() = %q, want %q", got, want)
	}

	i := &Installer{Network: "mainnet", Platform: Platform{"macos", "arm64"}}
	if got := i.URL(ChecksumFile); got != "https://files.edge.network/cli/mainnet/macos/arm64/latest/checksum" {
		t.Errorf("URL() = %q", got)
	}
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile() error: %v", err)
	}
	const want = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got != want {
		t.Errorf("HashFile() = %q, want %q", got, want)
	}

	if _, err := HashFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("HashFile(missing) should fail")
	}
}

func TestRemoteChecksum(t *testing.T) {
	srv := newFileServer(t, nil, "ABCDEF0123  edge")
	i := newInstaller(t, srv)

	got, err := i.RemoteChecksum(context.Background())
	if err != nil {
		t.Fatalf("RemoteChecksum() error: %v", err)
	}
	if got != "abcdef0123" {
		t.Errorf("RemoteChecksum() = %q", got)
	}
}

func TestRemoteChecksum_Empty(t *testing.T) {
	srv := newFileServer(t, nil, "   ")
	i := newInstaller(t, srv)

	if _, err := i.RemoteChecksum(context.Background()); err == nil {
		t.Error("expected error for empty checksum")
	}
}

func TestInstall_Downloads(t *testing.T) {
	binary := []byte("#!/bin/sh\necho edge\n")
	srv := newFileServer(t, binary, sum(binary))
	i := newInstaller(t, srv)

	res, err := i.Install(context.Background())
	if err != nil {
		t.Fatalf("Install() error: %v", err)
	}
	if !res.Downloaded || res.Bytes != int64(len(binary)) || res.Checksum != sum(binary) {
		t.Errorf("Install() = %+v", res)
	}

	data, err := os.ReadFile(i.BinaryPath)
	if err != nil {
		t.Fatalf("binary not installed: %v", err)
	}
	if string(data) != string(binary) {
		t.Error("installed binary content differs")
	}
	info, _ := os.Stat(i.BinaryPath)
	if info.Mode().Perm()&0100 == 0 {
		t.Errorf("binary mode = %v, want executable", info.Mode())
	}

	if err := i.Verify(context.Background()); err != nil {
		t.Errorf("Verify() after install: %v", err)
	}

	entries, _ := os.ReadDir(filepath.Dir(i.BinaryPath))
	if len(entries) != 1 {
		t.Errorf("install dir has %d entries, want only the binary", len(entries))
	}
}

func TestInstall_UpToDate(t *testing.T) {
	binary := []byte("edge v1")
	srv := newFileServer(t, binary, sum(binary))
	i := newInstaller(t, srv)

	if _, err := i.Install(context.Background()); err != nil {
		t.Fatal(err)
	}
	res, err := i.Install(context.Background())
	if err != nil {
		t.Fatalf("second Install() error: %v", err)
	}
	if res.Downloaded {
		t.Error("second Install() should not download")
	}
	if n := srv.downloads.Load(); n != 1 {
		t.Errorf("downloads = %d, want 1", n)
	}
}

func TestInstall_ReplacesOutdated(t *testing.T) {
	binary := []byte("edge v2")
	srv := newFileServer(t, binary, sum(binary))
	i := newInstaller(t, srv)

	if err := os.MkdirAll(filepath.Dir(i.BinaryPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(i.BinaryPath, []byte("edge v1"), 0755); err != nil {
		t.Fatal(err)
	}

	var mismatch *ChecksumMismatchError
	if err := i.Verify(context.Background()); !errors.As(err, &mismatch) {
		t.Fatalf("Verify() error = %v, want mismatch", err)
	}

	res, err := i.Install(context.Background())
	if err != nil {
		t.Fatalf("Install() error: %v", err)
	}
	if !res.Downloaded {
		t.Error("outdated binary should be replaced")
	}
	data, _ := os.ReadFile(i.BinaryPath)
	if string(data) != "edge v2" {
		t.Errorf("binary = %q, want edge v2", data)
	}
}

func TestInstall_ChecksumMismatch(t *testing.T) {
	binary := []byte("tampered")
	srv := newFileServer(t, binary, sum([]byte("original")))
	i := newInstaller(t, srv)

	_, err := i.Install(context.Background())
	var mismatch *ChecksumMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Install() error = %v, want *ChecksumMismatchError", err)
	}
	if mismatch.Expected != sum([]byte("original")) || mismatch.Actual != sum(binary) {
		t.Errorf("mismatch = %+v", mismatch)
	}

	if _, err := os.Stat(i.BinaryPath); !os.IsNotExist(err) {
		t.Error("mismatched binary should not be installed")
	}
	entries, _ := os.ReadDir(filepath.Dir(i.BinaryPath))
	if len(entries) != 0 {
		t.Errorf("temporary download left behind: %v", entries)
	}
}

func TestInstall_NotFound(t *testing.T) {
	srv := newFileServer(t, nil, "abc")
	i := newInstaller(t, srv)
	i.Network = "devnet"

	if _, err := i.Install(context.Background()); err == nil {
		t.Error("expected error for unknown network path")
	}
}

func TestVerify_NotInstalled(t *testing.T) {
	srv := newFileServer(t, nil, "abc")
	i := newInstaller(t, srv)

	if err := i.Verify(context.Background()); !errors.Is(err, ErrNotInstalled) {
		t.Errorf("Verify() error = %v, want ErrNotInstalled", err)
	}
}
