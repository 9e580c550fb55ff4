package services_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/epeers/wealthboard/internal/models"
	"github.com/epeers/wealthboard/internal/services"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sub(base string, holdings ...any) models.SubPortfolio {
	sp := models.SubPortfolio{BaseValue: d(base)}
	for i := 0; i+1 < len(holdings); i += 2 {
		sp.Holdings = append(sp.Holdings, models.Holding{
			Category:   holdings[i].(string),
			Percentage: d(holdings[i+1].(string)),
		})
	}
	return sp
}

// dashboardSubPortfolios is the current account, ISA and SIPP as shown on the dashboard
func dashboardSubPortfolios() []models.SubPortfolio {
	return []models.SubPortfolio{
		sub("3542.19", "Cash", "100"),
		sub("12650.80",
			"UK Equities", "30",
			"US Equities", "40",
			"Europe Equities", "15",
			"Emerging Markets", "10",
			"Bonds", "5"),
		sub("45872.32",
			"Global Equities", "60",
			"UK Equities", "15",
			"Bonds", "20",
			"Property", "5"),
	}
}

func TestAggregate_DashboardScenario(t *testing.T) {
	got, err := services.Aggregate(dashboardSubPortfolios())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !got.CombinedBase.Equal(d("62065.31")) {
		t.Errorf("expected combined base 62065.31, got %s", got.CombinedBase)
	}

	want := []models.AllocationEntry{
		{Category: "Global Equities", Percentage: 44},
		{Category: "UK Equities", Percentage: 17},
		{Category: "Bonds", Percentage: 16},
		{Category: "US Equities", Percentage: 8},
		{Category: "Cash", Percentage: 6},
		{Category: "Property", Percentage: 4},
		{Category: "Europe Equities", Percentage: 3},
		{Category: "Emerging Markets", Percentage: 2},
	}
	if !reflect.DeepEqual(got.Entries, want) {
		t.Errorf("unexpected entries:\n got  %+v\n want %+v", got.Entries, want)
	}
	if got.Total() != 100 {
		t.Errorf("expected entries to sum to 100, got %d", got.Total())
	}
}

func TestAggregate_SingleSubPortfolioIdentity(t *testing.T) {
	in := sub("12650.80",
		"UK Equities", "30",
		"US Equities", "40",
		"Europe Equities", "15",
		"Emerging Markets", "10",
		"Bonds", "5")

	got, err := services.Aggregate([]models.SubPortfolio{in})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := map[string]int64{
		"UK Equities": 30, "US Equities": 40, "Europe Equities": 15, "Emerging Markets": 10, "Bonds": 5,
	}
	if len(got.Entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got.Entries))
	}
	for _, e := range got.Entries {
		if want[e.Category] != e.Percentage {
			t.Errorf("%s: expected %d, got %d", e.Category, want[e.Category], e.Percentage)
		}
	}
}

func TestAggregate_SharedCategoryMerges(t *testing.T) {
	// 50% of 1000 + 25% of 3000 = 1250 of 4000 = 31.25%
	got, err := services.Aggregate([]models.SubPortfolio{
		sub("1000", "Bonds", "50", "Cash", "50"),
		sub("3000", "Bonds", "25", "Property", "75"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	count := 0
	for _, e := range got.Entries {
		if e.Category == "Bonds" {
			count++
			if e.Percentage != 31 {
				t.Errorf("expected Bonds 31, got %d", e.Percentage)
			}
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one Bonds entry, got %d", count)
	}
}

func TestAggregate_CategoryNamesAreCaseSensitive(t *testing.T) {
	got, err := services.Aggregate([]models.SubPortfolio{
		sub("100", "Bonds", "100"),
		sub("100", "bonds", "100"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []models.AllocationEntry{
		{Category: "Bonds", Percentage: 50},
		{Category: "bonds", Percentage: 50},
	}
	if !reflect.DeepEqual(got.Entries, want) {
		t.Errorf("got %+v, want %+v", got.Entries, want)
	}
}

func TestAggregate_ZeroBaseContributesNothing(t *testing.T) {
	base := []models.SubPortfolio{
		sub("1000", "Cash", "40", "Bonds", "60"),
	}
	withZero := append(base, sub("0", "Property", "100", "Bonds", "100"))

	want, err := services.Aggregate(base)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got, err := services.Aggregate(withZero)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(got.Entries, want.Entries) {
		t.Errorf("zero-base sub-portfolio changed the result: got %+v, want %+v", got.Entries, want.Entries)
	}
}

func TestAggregate_ZeroCombinedBaseIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		in   []models.SubPortfolio
	}{
		{"nil input", nil},
		{"all zero", []models.SubPortfolio{sub("0", "Cash", "100"), sub("0")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := services.Aggregate(tt.in)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(got.Entries) != 0 {
				t.Errorf("expected no entries, got %+v", got.Entries)
			}
			if services.AllocationDrift(got) != 0 {
				t.Errorf("expected zero drift for empty allocation")
			}
		})
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	in := dashboardSubPortfolios()
	reversed := []models.SubPortfolio{in[2], in[0], in[1]}
	reversed[0].Holdings = []models.Holding{
		in[2].Holdings[3], in[2].Holdings[1], in[2].Holdings[0], in[2].Holdings[2],
	}

	a, err := services.Aggregate(in)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	b, err := services.Aggregate(reversed)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(a.Entries, b.Entries) {
		t.Errorf("aggregation depends on input order:\n%+v\n%+v", a.Entries, b.Entries)
	}
	if !a.CombinedBase.Equal(b.CombinedBase) {
		t.Errorf("combined base depends on input order: %s vs %s", a.CombinedBase, b.CombinedBase)
	}
}

func TestAggregate_TiesBrokenByCategoryName(t *testing.T) {
	got, err := services.Aggregate([]models.SubPortfolio{
		sub("300", "Property", "25", "Cash", "25", "Bonds", "50"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []models.AllocationEntry{
		{Category: "Bonds", Percentage: 50},
		{Category: "Cash", Percentage: 25},
		{Category: "Property", Percentage: 25},
	}
	if !reflect.DeepEqual(got.Entries, want) {
		t.Errorf("got %+v, want %+v", got.Entries, want)
	}
}

func TestAggregate_RoundHalfUp(t *testing.T) {
	// 12.5% and 87.5% round to 13 and 88
	got, err := services.Aggregate([]models.SubPortfolio{
		sub("800", "A", "12.5", "B", "87.5"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []models.AllocationEntry{
		{Category: "B", Percentage: 88},
		{Category: "A", Percentage: 13},
	}
	if !reflect.DeepEqual(got.Entries, want) {
		t.Errorf("got %+v, want %+v", got.Entries, want)
	}
	if drift := services.AllocationDrift(got); drift != -1 {
		t.Errorf("expected drift -1, got %d", drift)
	}
}

func TestAggregate_RoundHalfUpIsExact(t *testing.T) {
	// 44.4999999999999990% must not become 44.50 before rounding
	got, err := services.Aggregate([]models.SubPortfolio{
		sub("0.44499999999999999", "Cash", "100"),
		sub("0.55500000000000001", "Bonds", "100"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []models.AllocationEntry{
		{Category: "Bonds", Percentage: 56},
		{Category: "Cash", Percentage: 44},
	}
	if !reflect.DeepEqual(got.Entries, want) {
		t.Errorf("got %+v, want %+v", got.Entries, want)
	}
	if got.Total() != 100 {
		t.Errorf("expected total 100, got %d", got.Total())
	}
}

func TestAggregate_SumWithinOneOfHundred(t *testing.T) {
	inputs := [][]models.SubPortfolio{
		dashboardSubPortfolios(),
		{sub("1", "A", "100"), sub("2", "B", "100"), sub("4", "C", "100")},
		{sub("10000", "A", "33.4", "B", "33.3", "C", "33.3")},
		{sub("523.10", "X", "70", "Y", "30"), sub("99.99", "Y", "10", "Z", "90")},
	}
	for i, in := range inputs {
		got, err := services.Aggregate(in)
		if err != nil {
			t.Fatalf("input %d: expected no error, got %v", i, err)
		}
		if drift := services.AllocationDrift(got); drift < -1 || drift > 1 {
			t.Errorf("input %d: total %d is not within 1 of 100", i, got.Total())
		}
	}
}

func TestAggregate_InvalidInput(t *testing.T) {
	tests := []struct {
		name        string
		in          []models.SubPortfolio
		wantIndex   int
		wantHolding int
	}{
		{"negative base", []models.SubPortfolio{sub("100", "Cash", "100"), sub("-1", "Cash", "100")}, 1, -1},
		{"negative percentage", []models.SubPortfolio{sub("100", "Cash", "-0.01")}, 0, 0},
		{"percentage over 100", []models.SubPortfolio{sub("100", "Cash", "50", "Bonds", "100.5")}, 0, 1},
		{"negative percentage on zero base", []models.SubPortfolio{sub("0", "Cash", "-5")}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := services.Aggregate(tt.in)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, services.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			var invalid *services.InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected *InvalidInputError, got %T", err)
			}
			if invalid.Index != tt.wantIndex || invalid.Holding != tt.wantHolding {
				t.Errorf("expected index %d holding %d, got %d %d", tt.wantIndex, tt.wantHolding, invalid.Index, invalid.Holding)
			}
			if len(got.Entries) != 0 || !got.CombinedBase.IsZero() {
				t.Errorf("expected no partial result, got %+v", got)
			}
		})
	}
}

func TestAggregate_BoundaryPercentagesAccepted(t *testing.T) {
	_, err := services.Aggregate([]models.SubPortfolio{sub("10", "Cash", "0", "Bonds", "100")})
	if err != nil {
		t.Errorf("expected 0 and 100 to be accepted, got %v", err)
	}
}

func TestAggregateAccounts_CurrentAccountIsCash(t *testing.T) {
	accounts := []models.Account{
		{Kind: models.AccountKindCurrent, Name: "Current Account", Balance: d("250"),
			Allocation: []models.Holding{{Category: "Ignored", Percentage: d("100")}}},
		{Kind: models.AccountKindISA, Name: "ISA", Balance: d("750"),
			Allocation: []models.Holding{{Category: "Bonds", Percentage: d("100")}}},
	}
	got, err := services.AggregateAccounts(accounts)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []models.AllocationEntry{
		{Category: "Bonds", Percentage: 75},
		{Category: "Cash", Percentage: 25},
	}
	if !reflect.DeepEqual(got.Entries, want) {
		t.Errorf("got %+v, want %+v", got.Entries, want)
	}
}

func TestChartSlices(t *testing.T) {
	slices := services.ChartSlices(models.CombinedAllocation{Entries: []models.AllocationEntry{
		{Category: "Cash", Percentage: 60},
		{Category: "Crypto", Percentage: 40},
	}})
	if len(slices) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(slices))
	}
	if slices[0].Color != models.AssetCash.Display().Color {
		t.Errorf("expected cash colour, got %s", slices[0].Color)
	}
	if slices[1].Label != "Crypto" || slices[1].Color != models.AssetOther.Display().Color {
		t.Errorf("expected unknown category to keep its name with the Other colour, got %+v", slices[1])
	}
}
