// Package testutil provides test fixtures and utilities.
//
// This package contains embedded index API responses, a fake index API
// server, and a TestEnv that wires mocks into app.Default.
//
// # Fixtures
//
// JSON fixtures are embedded using go:embed:
//
//	fixtures/session.json              session for NodeAddress
//	fixtures/session_stringified.json  same session with "node" as a JSON string
//	fixtures/stake.json                stake StakeID owned by WalletAddress
//	fixtures/transactions.json         wallet transactions incl. "Node Earnings"
//	fixtures/snapshots.json            node snapshots
//	fixtures/error.json                {"error": ...} body returned for unknown ids
//
// # Loading Fixtures
//
//	doc, err := testutil.SessionDocument()
//	data, err := testutil.LoadFixture("stake.json")
//
// # Usage in Tests
//
//	func TestDeriveWallet(t *testing.T) {
//	    env := testutil.NewTestEnv(t)
//	    env.ConfigureNode()
//	    // run a command against env.Index and env.Exec
//	}
package testutil
