// Package earnings detects node earnings payouts in a wallet's
// transaction list.
//
// A payout is a transaction whose data.memo contains "Node Earnings".
// Amounts are in micro XE and timestamps in unix milliseconds. The newest
// payout seen is persisted as last_node_payment so each one is reported once.
package earnings
