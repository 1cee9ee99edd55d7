package testutil

import (
	"embed"
	"testing"

	"github.com/edge-node/edge-launcher/internal/keypath"
)

//go:embed fixtures/*.json
var fixturesFS embed.FS

// Identifiers used throughout the index API fixtures.
const (
	NodeAddress   = "xe_3F8e1d9b0e2c4A5b6C7d8E9f0a1B2c3D4e5F6a7B"
	StakeID       = "a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f90"
	WalletAddress = "xe_A4788d8201Fb879e3b7523a0367401D2a985D42F"

	// Newest "Node Earnings" transaction in transactions.json.
	LatestEarningsTimestamp int64 = 1672560000000
	LatestEarningsAmount    int64 = 2500000
)

// LoadFixture loads a JSON fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// MustFixture loads a fixture or fails the test.
func MustFixture(t testing.TB, name string) []byte {
	t.Helper()
	data, err := LoadFixture(name)
	if err != nil {
		t.Fatalf("Failed to load fixture %s: %v", name, err)
	}
	return data
}

// LoadDocumentFixture loads a fixture and decodes it as a JSON object.
func LoadDocumentFixture(name string) (map[string]any, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	return keypath.Decode(data)
}

// SessionDocument returns the session fixture for NodeAddress.
func SessionDocument() (map[string]any, error) {
	return LoadDocumentFixture("session.json")
}

// StakeDocument returns the stake fixture for StakeID.
func StakeDocument() (map[string]any, error) {
	return LoadDocumentFixture("stake.json")
}

// TransactionsDocument returns the transactions fixture for WalletAddress.
func TransactionsDocument() (map[string]any, error) {
	return LoadDocumentFixture("transactions.json")
}
