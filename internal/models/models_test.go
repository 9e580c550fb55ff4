package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAssetCategories_TotalDisplayMapping(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range AssetCategories() {
		d, ok := assetDisplay[c]
		if !ok {
			t.Fatalf("asset category %d has no display attributes", c)
		}
		if d.Label == "" || d.Color == "" {
			t.Errorf("asset category %d has empty label or colour: %+v", c, d)
		}
		if seen[d.Label] {
			t.Errorf("duplicate asset label %q", d.Label)
		}
		seen[d.Label] = true

		parsed, ok := ParseAssetCategory(d.Label)
		if !ok || parsed != c {
			t.Errorf("ParseAssetCategory(%q) = %d, %v; want %d, true", d.Label, parsed, ok, c)
		}
	}
	if len(AssetCategories()) != len(assetDisplay) {
		t.Errorf("AssetCategories lists %d categories, display map has %d", len(AssetCategories()), len(assetDisplay))
	}
}

func TestParseAssetCategory_Unknown(t *testing.T) {
	for _, name := range []string{"Crypto", "bonds", ""} {
		c, ok := ParseAssetCategory(name)
		if ok || c != AssetOther {
			t.Errorf("ParseAssetCategory(%q) = %d, %v; want AssetOther, false", name, c, ok)
		}
	}
}

func TestTransactionCategories_TotalDisplayMapping(t *testing.T) {
	for _, c := range TransactionCategories() {
		if !c.Valid() {
			t.Errorf("category %q is not valid", c)
		}
		d := c.Display()
		if d.Label == "" || d.Icon == "" || d.Color == "" {
			t.Errorf("category %q has incomplete display attributes: %+v", c, d)
		}
	}
	if len(TransactionCategories()) != len(transactionDisplay) {
		t.Errorf("TransactionCategories lists %d, display map has %d", len(TransactionCategories()), len(transactionDisplay))
	}
}

func TestTransactionCategory_UnmarshalJSON(t *testing.T) {
	var c TransactionCategory
	if err := json.Unmarshal([]byte(`"food"`), &c); err != nil || c != CategoryFood {
		t.Errorf("expected food, got %q, %v", c, err)
	}
	err := json.Unmarshal([]byte(`"gambling"`), &c)
	if err == nil || !strings.Contains(err.Error(), "unknown transaction category") {
		t.Errorf("expected unknown category error, got %v", err)
	}
}

func TestAllowance(t *testing.T) {
	tests := []struct {
		used, total    string
		remaining      string
		usedPercentage string
	}{
		{"11360", "20000", "8640", "56.8"},
		{"12000", "60000", "48000", "20"},
		{"25000", "20000", "0", "125"},
		{"0", "0", "0", "0"},
		{"1", "3", "2", "33.3"},
	}
	for _, tt := range tests {
		a := Allowance{Used: decimal.RequireFromString(tt.used), Total: decimal.RequireFromString(tt.total)}
		if got := a.Remaining(); !got.Equal(decimal.RequireFromString(tt.remaining)) {
			t.Errorf("Remaining(%s/%s) = %s, want %s", tt.used, tt.total, got, tt.remaining)
		}
		if got := a.UsedPercentage(); !got.Equal(decimal.RequireFromString(tt.usedPercentage)) {
			t.Errorf("UsedPercentage(%s/%s) = %s, want %s", tt.used, tt.total, got, tt.usedPercentage)
		}
	}
}

func TestAccount_SubPortfolio(t *testing.T) {
	current := Account{Kind: AccountKindCurrent, Name: "Current", Balance: decimal.NewFromInt(50)}
	sp := current.SubPortfolio()
	if len(sp.Holdings) != 1 || sp.Holdings[0].Category != "Cash" || !sp.Holdings[0].Percentage.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected current account as 100%% Cash, got %+v", sp.Holdings)
	}

	isa := Account{Kind: AccountKindISA, Balance: decimal.NewFromInt(10), Allocation: []Holding{{Category: "Bonds", Percentage: decimal.NewFromInt(100)}}}
	if got := isa.SubPortfolio().Holdings; len(got) != 1 || got[0].Category != "Bonds" {
		t.Errorf("expected ISA holdings to pass through, got %+v", got)
	}
}

func TestParseAccountKind(t *testing.T) {
	for _, k := range AccountKinds() {
		if got, err := ParseAccountKind(string(k)); err != nil || got != k {
			t.Errorf("ParseAccountKind(%q) = %q, %v", k, got, err)
		}
	}
	if _, err := ParseAccountKind("ISA"); err == nil {
		t.Error("expected kinds to be case-sensitive")
	}
}

func TestCombinedAllocation_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(CombinedAllocation{CombinedBase: decimal.Zero})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != `{"entries":[],"combined_base":"0"}` {
		t.Errorf("unexpected JSON %s", b)
	}

	b, err = json.Marshal(CombinedAllocation{
		Entries:      []AllocationEntry{{Category: "Cash", Percentage: 100}},
		CombinedBase: decimal.RequireFromString("3542.19"),
	})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != `{"entries":[{"category":"Cash","percentage":100}],"combined_base":"3542.19"}` {
		t.Errorf("unexpected JSON %s", b)
	}
}

func TestFlexibleDate(t *testing.T) {
	var d FlexibleDate
	if err := json.Unmarshal([]byte(`"2025-03-10"`), &d); err != nil {
		t.Fatalf("date-only: %v", err)
	}
	if err := json.Unmarshal([]byte(`"2025-03-10T14:30:00Z"`), &d); err != nil {
		t.Fatalf("RFC3339: %v", err)
	}
	b, _ := json.Marshal(d)
	if string(b) != `"2025-03-10"` {
		t.Errorf("expected date-only output, got %s", b)
	}
	if err := json.Unmarshal([]byte(`"10/03/2025"`), &d); err == nil {
		t.Error("expected error for unsupported layout")
	}
	if err := json.Unmarshal([]byte(`""`), &d); err == nil {
		t.Error("expected error for empty date")
	}
}

func TestFlexibleDate_TruncatesToUTCDay(t *testing.T) {
	var a, b FlexibleDate
	if err := json.Unmarshal([]byte(`"2025-03-10T23:30:00-02:00"`), &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(`"2025-03-11"`), &b); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b.Time) {
		t.Errorf("expected %s and %s to be the same day", a.Format(time.RFC3339), b.Format(time.RFC3339))
	}
}
