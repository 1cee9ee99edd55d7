package edgecli

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/edge-node/edge-launcher/internal/logging"
)

const (
	DefaultBaseURL = "https://files.edge.network/cli"
	DefaultVersion = "latest"

	// ChecksumFile is published next to every binary.
	ChecksumFile = "checksum"
)

// ErrNotInstalled is returned when the Edge CLI binary does not exist.
var ErrNotInstalled = errors.New("edge CLI is not installed")

// ChecksumMismatchError reports a binary whose SHA-256 differs from the
// published checksum.
type ChecksumMismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// FileURL returns <base>/<network>/<os>/<arch>/<version>/<file>.
func FileURL(base, network string, p Platform, version, file string) string {
	return strings.TrimRight(base, "/") + "/" + network + "/" + p.OS + "/" + p.Arch + "/" + version + "/" + file
}

// HashFile returns the lowercase hex SHA-256 of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Installer downloads and verifies the Edge CLI.
type Installer struct {
	HTTP       *http.Client
	BaseURL    string
	Network    string
	Platform   Platform
	Version    string
	BinaryPath string
}

// InstallResult describes the binary after Install.
type InstallResult struct {
	Path       string `json:"path" yaml:"path"`
	Checksum   string `json:"checksum" yaml:"checksum"`
	Downloaded bool   `json:"downloaded" yaml:"downloaded"`
	Bytes      int64  `json:"bytes,omitempty" yaml:"bytes,omitempty"`
}

func (i *Installer) client() *http.Client {
	if i.HTTP == nil {
		return http.DefaultClient
	}
	return i.HTTP
}

// URL returns the download URL of file for the installer's target.
func (i *Installer) URL(file string) string {
	base := i.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	version := i.Version
	if version == "" {
		version = DefaultVersion
	}
	return FileURL(base, i.Network, i.Platform, version, file)
}

func (i *Installer) get(ctx context.Context, file string) (*http.Response, error) {
	u := i.URL(file)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := i.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", u, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download %s: unexpected status %d", u, resp.StatusCode)
	}
	return resp, nil
}

// RemoteChecksum downloads the published SHA-256 of the binary.
func (i *Installer) RemoteChecksum(ctx context.Context) (string, error) {
	resp, err := i.get(ctx, ChecksumFile)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("read checksum: %w", err)
	}
	// Accept both a bare hash and "<hash>  <file>".
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return "", fmt.Errorf("empty checksum file at %s", i.URL(ChecksumFile))
	}
	return strings.ToLower(fields[0]), nil
}

// Verify compares the installed binary with the published checksum.
func (i *Installer) Verify(ctx context.Context) error {
	if _, err := os.Stat(i.BinaryPath); errors.Is(err, os.ErrNotExist) {
		return ErrNotInstalled
	}

	local, err := HashFile(i.BinaryPath)
	if err != nil {
		return err
	}
	remote, err := i.RemoteChecksum(ctx)
	if err != nil {
		return err
	}

	if local != remote {
		return &ChecksumMismatchError{Path: i.BinaryPath, Expected: remote, Actual: local}
	}
	return nil
}

// Install makes sure the binary at BinaryPath matches the published
// checksum, downloading it when missing or outdated. A download that does
// not match is removed.
func (i *Installer) Install(ctx context.Context) (*InstallResult, error) {
	remote, err := i.RemoteChecksum(ctx)
	if err != nil {
		return nil, err
	}

	if local, err := HashFile(i.BinaryPath); err == nil && local == remote {
		logging.Debug("edge CLI up to date", "path", i.BinaryPath, "checksum", local)
		return &InstallResult{Path: i.BinaryPath, Checksum: local}, nil
	}

	dir := filepath.Dir(i.BinaryPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	binary := filepath.Base(i.BinaryPath)
	resp, err := i.get(ctx, binary)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp(dir, "."+binary+".download-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create download file: %w", err)
	}
	tmpPath := tmp.Name()
	keep := false
	defer func() {
		if !keep {
			os.Remove(tmpPath)
		}
	}()

	logging.Debug("downloading edge CLI", "url", i.URL(binary), "size", resp.ContentLength, "dest", i.BinaryPath)
	start := time.Now()

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(tmp, h), resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", i.URL(binary), err)
	}

	actual := hex.EncodeToString(h.Sum(nil))
	logging.Debug("edge CLI downloaded", "bytes", n, "duration", time.Since(start), "checksum", actual)

	if actual != remote {
		return nil, &ChecksumMismatchError{Path: i.BinaryPath, Expected: remote, Actual: actual}
	}

	if err := os.Chmod(tmpPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to mark edge CLI executable: %w", err)
	}
	if err := os.Rename(tmpPath, i.BinaryPath); err != nil {
		return nil, fmt.Errorf("failed to install edge CLI: %w", err)
	}
	keep = true

	return &InstallResult{Path: i.BinaryPath, Checksum: actual, Downloaded: true, Bytes: n}, nil
}
