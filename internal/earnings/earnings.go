package earnings

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/encoding/json"

	"github.com/edge-node/edge-launcher/internal/config"
	"github.com/edge-node/edge-launcher/internal/indexapi"
	"github.com/edge-node/edge-launcher/internal/logging"
)

// Memo marks node earnings payouts.
const Memo = "Node Earnings"

// MicroXE is the number of base units in one XE.
const MicroXE = 1_000_000

// Payment is a node earnings transaction.
type Payment struct {
	Timestamp int64  `json:"timestamp" yaml:"timestamp"` // unix milliseconds
	Amount    int64  `json:"amount" yaml:"amount"`       // micro XE
	Hash      string `json:"hash,omitempty" yaml:"hash,omitempty"`
}

// XE returns the amount in XE.
func (p Payment) XE() float64 {
	return float64(p.Amount) / MicroXE
}

// Time returns the transaction time.
func (p Payment) Time() time.Time {
	return time.UnixMilli(p.Timestamp)
}

// Latest returns the newest transaction in doc whose data.memo contains
// Memo. Malformed entries are skipped.
func Latest(doc indexapi.Document) (Payment, bool) {
	results, ok := doc["results"].([]any)
	if !ok {
		return Payment{}, false
	}

	var latest Payment
	found := false
	for _, r := range results {
		tx, ok := r.(map[string]any)
		if !ok || !isEarnings(tx) {
			continue
		}
		ts, ok := toInt(tx["timestamp"])
		if !ok || ts <= latest.Timestamp {
			continue
		}
		amount, _ := toInt(tx["amount"])
		hash, _ := tx["hash"].(string)
		latest = Payment{Timestamp: ts, Amount: amount, Hash: hash}
		found = true
	}
	return latest, found
}

func isEarnings(tx map[string]any) bool {
	data, ok := tx["data"].(map[string]any)
	if !ok {
		return false
	}
	memo, ok := data["memo"].(string)
	return ok && strings.Contains(memo, Memo)
}

// toInt accepts the number forms the decoders produce. Fractional values
// and values outside the int64 range are rejected.
func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil {
			return floatToInt(f)
		}
	case float64:
		return floatToInt(n)
	case int64:
		return n, true
	case int:
		return int64(n), true
	case string:
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

// floatToInt converts f when it is a whole number that fits in an int64.
// 2^63 itself is representable as a float64 but not as an int64.
func floatToInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// Result is the outcome of Check.
type Result struct {
	Payment Payment `json:"payment" yaml:"payment"`
	Found   bool    `json:"found" yaml:"found"` // any earnings transaction exists
	New     bool    `json:"new" yaml:"new"`     // newer than the last one recorded
}

// Message describes a new payment for the user.
func (r Result) Message() string {
	return fmt.Sprintf("You earned %g XE! The transaction was received on %s.",
		r.Payment.XE(), r.Payment.Time().Local().Format(time.RFC1123))
}

// TransactionSource fetches the transactions of an address.
type TransactionSource interface {
	Transactions(ctx context.Context, address string) (indexapi.Document, error)
}

// Check fetches the transactions of cfg.WalletAddress and reports the
// newest earnings payment. When it is newer than cfg.LastNodePayment the
// field is advanced; saving cfg is left to the caller.
func Check(ctx context.Context, src TransactionSource, cfg *config.LauncherConfig) (Result, error) {
	if !cfg.HasWallet() {
		return Result{}, fmt.Errorf("no wallet address configured")
	}

	doc, err := src.Transactions(ctx, cfg.WalletAddress)
	if err != nil {
		return Result{}, fmt.Errorf("fetch transactions of %s: %w", cfg.WalletAddress, err)
	}

	p, found := Latest(doc)
	res := Result{Payment: p, Found: found}
	if found && p.Timestamp > cfg.LastNodePayment {
		logging.Debug("new node earnings", "timestamp", p.Timestamp, "amount", p.Amount, "previous", cfg.LastNodePayment)
		cfg.LastNodePayment = p.Timestamp
		res.New = true
	}
	return res, nil
}
