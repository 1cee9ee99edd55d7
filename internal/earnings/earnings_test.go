package earnings

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/encoding/json"

	"github.com/edge-node/edge-launcher/internal/config"
	"github.com/edge-node/edge-launcher/internal/indexapi"
	"github.com/edge-node/edge-launcher/internal/testutil"
)

func transactions(t *testing.T) indexapi.Document {
	t.Helper()
	doc, err := testutil.TransactionsDocument()
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestLatest(t *testing.T) {
	p, ok := Latest(transactions(t))
	if !ok {
		t.Fatal("Latest() found no earnings")
	}
	if p.Timestamp != testutil.LatestEarningsTimestamp {
		t.Errorf("Timestamp = %d, want %d", p.Timestamp, testutil.LatestEarningsTimestamp)
	}
	if p.Amount != testutil.LatestEarningsAmount {
		t.Errorf("Amount = %d, want %d", p.Amount, testutil.LatestEarningsAmount)
	}
	if p.Hash != "tx03" {
		t.Errorf("Hash = %q, want tx03", p.Hash)
	}
}

func TestLatest_NoEarnings(t *testing.T) {
	tests := []struct {
		name string
		doc  indexapi.Document
	}{
		{"empty", indexapi.Document{}},
		{"results not a list", indexapi.Document{"results": "none"}},
		{"no memo", indexapi.Document{"results": []any{
			map[string]any{"timestamp": float64(5), "amount": float64(1), "data": map[string]any{}},
		}}},
		{"other memo", indexapi.Document{"results": []any{
			map[string]any{"timestamp": float64(5), "amount": float64(1), "data": map[string]any{"memo": "Gift"}},
		}}},
		{"memo not a string", indexapi.Document{"results": []any{
			map[string]any{"timestamp": float64(5), "amount": float64(1), "data": map[string]any{"memo": float64(7)}},
		}}},
		{"entry not an object", indexapi.Document{"results": []any{"tx"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if p, ok := Latest(tt.doc); ok {
				t.Errorf("Latest() = %+v, want none", p)
			}
		})
	}
}

func TestLatest_NumberForms(t *testing.T) {
	doc := indexapi.Document{"results": []any{
		map[string]any{"timestamp": float64(100), "amount": float64(1), "data": map[string]any{"memo": Memo}},
		map[string]any{"timestamp": "300", "amount": int64(3), "data": map[string]any{"memo": Memo}},
		map[string]any{"timestamp": 200, "amount": 2, "data": map[string]any{"memo": Memo}},
	}}

	p, ok := Latest(doc)
	if !ok || p.Timestamp != 300 || p.Amount != 3 {
		t.Errorf("Latest() = %+v, %v", p, ok)
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   int64
		wantOK bool
	}{
		{"json integer", json.Number("42"), 42, true},
		{"json exponent", json.Number("1e3"), 1000, true},
		{"json fraction", json.Number("1.5"), 0, false},
		{"json beyond int64", json.Number("9223372036854775808"), 0, false},
		{"json huge exponent", json.Number("1e19"), 0, false},
		{"json below int64", json.Number("-1e19"), 0, false},
		{"float whole", float64(1690000000000), 1690000000000, true},
		{"float fraction", 2.5, 0, false},
		{"float beyond int64", 1e19, 0, false},
		{"string", "300", 300, true},
		{"string fraction", "3.5", 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toInt(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("toInt(%v) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLatest_SkipsOverflowingTimestamp(t *testing.T) {
	doc := indexapi.Document{"results": []any{
		map[string]any{"timestamp": json.Number("100"), "amount": json.Number("1"), "data": map[string]any{"memo": Memo}},
		map[string]any{"timestamp": json.Number("1e30"), "amount": json.Number("9"), "data": map[string]any{"memo": Memo}},
	}}

	p, ok := Latest(doc)
	if !ok || p.Timestamp != 100 || p.Amount != 1 {
		t.Errorf("Latest() = %+v, %v; want the entry at 100", p, ok)
	}
}

func TestPayment(t *testing.T) {
	p := Payment{Timestamp: 1672560000000, Amount: 2500000}
	if p.XE() != 2.5 {
		t.Errorf("XE() = %v, want 2.5", p.XE())
	}
	if !p.Time().Equal(time.Date(2023, 1, 1, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("Time() = %v", p.Time().UTC())
	}
}

type fakeSource struct {
	doc  indexapi.Document
	err  error
	addr string
}

func (f *fakeSource) Transactions(ctx context.Context, address string) (indexapi.Document, error) {
	f.addr = address
	return f.doc, f.err
}

func TestCheck(t *testing.T) {
	src := &fakeSource{doc: transactions(t)}
	cfg := testutil.NodeConfig()

	res, err := Check(context.Background(), src, cfg)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if src.addr != testutil.WalletAddress {
		t.Errorf("fetched %q, want wallet address", src.addr)
	}
	if !res.Found || !res.New {
		t.Errorf("Check() = %+v, want new payment", res)
	}
	if cfg.LastNodePayment != testutil.LatestEarningsTimestamp {
		t.Errorf("LastNodePayment = %d", cfg.LastNodePayment)
	}
	if !strings.Contains(res.Message(), "2.5 XE") {
		t.Errorf("Message() = %q", res.Message())
	}

	// A second check sees nothing new.
	res, err = Check(context.Background(), src, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Found || res.New {
		t.Errorf("second Check() = %+v, want found but not new", res)
	}
}

func TestCheck_Errors(t *testing.T) {
	cfg := config.Default()
	if _, err := Check(context.Background(), &fakeSource{}, cfg); err == nil {
		t.Error("expected error without wallet")
	}

	boom := errors.New("boom")
	cfg = testutil.NodeConfig()
	if _, err := Check(context.Background(), &fakeSource{err: boom}, cfg); !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
	if cfg.LastNodePayment != 0 {
		t.Error("failed check should not advance LastNodePayment")
	}
}

func TestCheck_WithIndexServer(t *testing.T) {
	srv := testutil.NewIndexServer(t)
	client, err := indexapi.New("", indexapi.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatal(err)
	}

	res, err := Check(context.Background(), client, testutil.NodeConfig())
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if res.Payment.Amount != testutil.LatestEarningsAmount {
		t.Errorf("Amount = %d", res.Payment.Amount)
	}
}
