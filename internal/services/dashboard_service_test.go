package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/epeers/wealthboard/internal/cache"
	"github.com/epeers/wealthboard/internal/models"
	"github.com/epeers/wealthboard/internal/repository"
	"github.com/epeers/wealthboard/internal/services"
	"github.com/shopspring/decimal"
)

type failingSource struct{ err error }

func (f failingSource) Load(context.Context) (models.Fixtures, error) {
	return models.Fixtures{}, f.err
}

func fallbackCurrency() *services.CurrencyService {
	return newCurrencyService(&fakeFetcher{rate: "1.30"}, cache.NewRateCache(time.Hour))
}

func TestDashboardSummary_DefaultFixtures(t *testing.T) {
	svc := services.NewDashboardService(repository.NewFixtureRepository(repository.DefaultFixtures()), fallbackCurrency())

	ctx, _ := services.NewWarningContext(context.Background())
	resp, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	wantCards := []struct {
		kind    models.AccountKind
		balance string
		link    string
	}{
		{models.AccountKindCurrent, "$4,498.58", "/accounts/current"},
		{models.AccountKindISA, "$16,066.52", "/accounts/isa"},
		{models.AccountKindSIPP, "$58,257.85", "/accounts/sipp"},
	}
	if len(resp.Accounts) != len(wantCards) {
		t.Fatalf("expected %d cards, got %d", len(wantCards), len(resp.Accounts))
	}
	for i, want := range wantCards {
		got := resp.Accounts[i]
		if got.Kind != want.kind || got.Balance.Formatted != want.balance || got.Link != want.link {
			t.Errorf("card %d: got %s %s %s, want %s %s %s", i, got.Kind, got.Balance.Formatted, got.Link, want.kind, want.balance, want.link)
		}
	}
	if resp.Accounts[0].IsPositive {
		t.Error("expected current account change to be negative")
	}

	if resp.TotalValue.Formatted != "$78,822.94" {
		t.Errorf("expected total $78,822.94, got %s", resp.TotalValue.Formatted)
	}
	if !resp.Allocation.CombinedBase.Equal(decimal.RequireFromString("62065.31")) {
		t.Errorf("expected combined base 62065.31, got %s", resp.Allocation.CombinedBase)
	}
	if len(resp.Allocation.Entries) != 8 || resp.Allocation.Entries[0].Category != "Global Equities" {
		t.Errorf("unexpected allocation: %+v", resp.Allocation.Entries)
	}
	if len(resp.Chart) != len(resp.Allocation.Entries) {
		t.Errorf("expected one chart slice per entry, got %d", len(resp.Chart))
	}

	if len(resp.RecentTransactions) != services.RecentTransactionLimit {
		t.Fatalf("expected %d recent transactions, got %d", services.RecentTransactionLimit, len(resp.RecentTransactions))
	}
	for i, id := range []string{"1", "2", "3", "4"} {
		if resp.RecentTransactions[i].ID != id {
			t.Errorf("recent[%d]: expected id %s, got %s", i, id, resp.RecentTransactions[i].ID)
		}
	}
	if resp.RecentTransactions[1].Icon != "shopping-bag" || resp.RecentTransactions[1].Converted.Formatted != "-$82.80" {
		t.Errorf("unexpected Tesco view: %+v", resp.RecentTransactions[1])
	}

	wantInsights := map[string]string{
		"isa_allowance":     "You still have $10,972.80 of your annual ISA allowance remaining. Consider using it before April 5th.",
		"pension_allowance": "You have used 20% of your pension annual allowance, $60,960.00 is still available.",
		"cash_flow":         "Money in vs out this period: +$1,973.67.",
	}
	if len(resp.Insights) != len(wantInsights) {
		t.Fatalf("expected %d insights, got %d", len(wantInsights), len(resp.Insights))
	}
	for _, in := range resp.Insights {
		if want := wantInsights[in.Kind]; in.Message != want {
			t.Errorf("insight %s: got %q, want %q", in.Kind, in.Message, want)
		}
	}

	if resp.Rate.Source != models.RateSourceFallback {
		t.Errorf("expected fallback rate, got %s", resp.Rate.Source)
	}
	if len(resp.Warnings) != 1 || resp.Warnings[0].Code != models.WarnFallbackFXRate {
		t.Errorf("expected only the fallback warning, got %+v", resp.Warnings)
	}
}

func TestDashboardSummary_ZeroBalanceAccountWarns(t *testing.T) {
	fixtures := repository.DefaultFixtures()
	fixtures.Accounts[1].Balance = decimal.Zero

	svc := services.NewDashboardService(repository.NewFixtureRepository(fixtures), fallbackCurrency())
	ctx, _ := services.NewWarningContext(context.Background())
	resp, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var zero int
	for _, w := range resp.Warnings {
		if w.Code == models.WarnZeroValueAccount {
			zero++
		}
	}
	if zero != 1 {
		t.Errorf("expected one zero-value warning, got %d in %+v", zero, resp.Warnings)
	}
	for _, e := range resp.Allocation.Entries {
		if e.Category == "US Equities" {
			t.Errorf("zero-balance ISA should not contribute US Equities, got %d%%", e.Percentage)
		}
	}
}

func TestDashboardSummary_DriftWarning(t *testing.T) {
	fixtures := models.Fixtures{
		BaseCurrency: "GBP",
		Accounts: []models.Account{{
			Kind:    models.AccountKindISA,
			Name:    "ISA",
			Balance: decimal.NewFromInt(300),
			Allocation: []models.Holding{
				{Category: "UK Equities", Percentage: decimal.RequireFromString("33.5")},
				{Category: "US Equities", Percentage: decimal.RequireFromString("33.5")},
				{Category: "Bonds", Percentage: decimal.NewFromInt(33)},
			},
		}},
	}
	svc := services.NewDashboardService(repository.NewFixtureRepository(fixtures), fallbackCurrency())
	ctx, _ := services.NewWarningContext(context.Background())
	resp, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	found := false
	for _, w := range resp.Warnings {
		if w.Code == models.WarnAllocationDrift {
			found = true
		}
	}
	if !found {
		t.Errorf("expected drift warning for total %d, got %+v", resp.Allocation.Total(), resp.Warnings)
	}
}

func TestDashboardSummary_SourceError(t *testing.T) {
	boom := errors.New("db down")
	svc := services.NewDashboardService(failingSource{err: boom}, fallbackCurrency())

	_, err := svc.Summary(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped source error, got %v", err)
	}
}

func TestNetCashFlow_IgnoresTransfers(t *testing.T) {
	txs := []models.Transaction{
		{Amount: decimal.NewFromInt(1000), Type: models.TransactionIncome},
		{Amount: decimal.NewFromInt(-250), Type: models.TransactionExpense},
		{Amount: decimal.NewFromInt(-500), Type: models.TransactionTransfer},
	}
	if got := services.NetCashFlow(txs); !got.Equal(decimal.NewFromInt(750)) {
		t.Errorf("expected 750, got %s", got)
	}
}
