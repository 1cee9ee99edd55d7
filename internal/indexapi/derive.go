package indexapi

import (
	"context"
	"fmt"

	"github.com/segmentio/encoding/json"

	"github.com/edge-node/edge-launcher/internal/logging"
)

// Key paths used to walk from a node to the wallet that owns it.
const (
	StakePath  = "node:stake"
	WalletPath = "wallet"
)

// Assignment links a node to its stake and the stake's wallet.
type Assignment struct {
	Node   string `json:"node" yaml:"node"`
	Stake  string `json:"stake" yaml:"stake"`
	Wallet string `json:"wallet" yaml:"wallet"`
}

// DeriveStake returns the stake assigned to nodeAddress, read from the
// node's session.
func (c *Client) DeriveStake(ctx context.Context, nodeAddress string) (string, error) {
	doc, err := c.Session(ctx, nodeAddress)
	if err != nil {
		return "", fmt.Errorf("fetch session of %s: %w", nodeAddress, err)
	}
	stake, err := doc.Lookup(StakePath)
	if err != nil {
		return "", fmt.Errorf("stake of node %s: %w", nodeAddress, err)
	}
	logging.Debug("derived stake", "node", nodeAddress, "stake", stake)
	return stake, nil
}

// DeriveWallet returns the wallet that holds stake.
func (c *Client) DeriveWallet(ctx context.Context, stake string) (string, error) {
	doc, err := c.Stake(ctx, stake)
	if err != nil {
		return "", fmt.Errorf("fetch stake %s: %w", stake, err)
	}
	wallet, err := doc.Lookup(WalletPath)
	if err != nil {
		return "", fmt.Errorf("wallet of stake %s: %w", stake, err)
	}
	logging.Debug("derived wallet", "stake", stake, "wallet", wallet)
	return wallet, nil
}

// DeriveWalletFromNode chains DeriveStake and DeriveWallet.
func (c *Client) DeriveWalletFromNode(ctx context.Context, nodeAddress string) (Assignment, error) {
	a := Assignment{Node: nodeAddress}

	stake, err := c.DeriveStake(ctx, nodeAddress)
	if err != nil {
		return a, err
	}
	a.Stake = stake

	wallet, err := c.DeriveWallet(ctx, stake)
	if err != nil {
		return a, err
	}
	a.Wallet = wallet

	return a, nil
}

// NodeOnline reports the online flag of the newest snapshot of nodeAddress.
// found is false when the node has no usable snapshot.
func (c *Client) NodeOnline(ctx context.Context, nodeAddress string) (online, found bool, err error) {
	doc, err := c.Snapshots(ctx, nodeAddress)
	if err != nil {
		return false, false, fmt.Errorf("fetch snapshots of %s: %w", nodeAddress, err)
	}

	results, _ := doc["results"].([]any)
	var newest int64
	for _, r := range results {
		snap, ok := r.(map[string]any)
		if !ok {
			continue
		}
		flag, ok := snap["online"].(bool)
		if !ok {
			continue
		}
		n, ok := snap["timestamp"].(json.Number)
		if !ok {
			continue
		}
		ts, err := n.Int64()
		if err != nil || (found && ts <= newest) {
			continue
		}
		newest, online, found = ts, flag, true
	}

	logging.Debug("node snapshot", "node", nodeAddress, "online", online, "found", found)
	return online, found, nil
}
