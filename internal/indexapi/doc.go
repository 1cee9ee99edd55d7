// Package indexapi is a client for the XE index API.
//
// Documents are fetched from <base>/<kind>/<id>, where kind is session,
// stake, snapshots or transactions. A body carrying a top-level "error" key,
// whatever its value, is reported as *APIError without being decoded; the check uses
// buger/jsonparser so large transaction lists are not parsed twice.
//
// Decoded documents are read with keypath:
//
//	doc, err := client.Session(ctx, node)
//	stake, err := doc.Lookup("node:stake")
//
// DeriveStake, DeriveWallet and DeriveWalletFromNode walk from a node
// address to the wallet that staked it. NodeOnline reads the node's newest
// snapshot.
package indexapi
