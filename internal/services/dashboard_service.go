package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/epeers/wealthboard/internal/models"
	"github.com/shopspring/decimal"
)

// RecentTransactionLimit is the number of transactions shown on the dashboard
const RecentTransactionLimit = 4

// DashboardService builds the combined dashboard view
type DashboardService struct {
	source   AccountSource
	currency *CurrencyService
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(source AccountSource, currency *CurrencyService) *DashboardService {
	return &DashboardService{
		source:   source,
		currency: currency,
	}
}

// Summary returns account cards, the combined allocation, recent activity
// and insights. Amounts are converted at a single rate snapshot.
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardResponse, error) {
	defer TrackTime("DashboardService.Summary", time.Now())

	fixtures, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	snap := s.currency.Rate()
	s.currency.AddRateWarnings(ctx, snap)

	total := decimal.Zero
	cards := make([]models.AccountCard, 0, len(fixtures.Accounts))
	for _, a := range fixtures.Accounts {
		if a.Balance.IsZero() {
			AddWarning(ctx, models.Warning{
				Code:    models.WarnZeroValueAccount,
				Message: fmt.Sprintf("account %q has a zero balance and does not contribute to the allocation", a.Name),
			})
		}
		total = total.Add(a.Balance)
		cards = append(cards, models.AccountCard{
			Kind:          a.Kind,
			Title:         a.Name,
			Balance:       ConvertAt(snap, a.Balance),
			Change:        ConvertAt(snap, a.MonthlyChange.Value),
			ChangePercent: a.MonthlyChange.Percentage,
			IsPositive:    a.MonthlyChange.IsPositive,
			Link:          "/accounts/" + string(a.Kind),
		})
	}

	allocation, err := AggregateAccounts(fixtures.Accounts)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate accounts: %w", err)
	}
	if drift := AllocationDrift(allocation); drift != 0 {
		AddWarning(ctx, models.Warning{
			Code:    models.WarnAllocationDrift,
			Message: fmt.Sprintf("rounded allocation sums to %d%%", allocation.Total()),
		})
	}

	return &models.DashboardResponse{
		Accounts:           cards,
		TotalValue:         ConvertAt(snap, total),
		Allocation:         allocation,
		Chart:              ChartSlices(allocation),
		RecentTransactions: recentTransactions(fixtures.Accounts, snap, RecentTransactionLimit),
		Insights:           insights(fixtures, snap),
		Rate:               snap,
		Warnings:           WarningsFromContext(ctx),
	}, nil
}

// ConvertAt converts amount at the snapshot's rate and formats it in the
// quote currency.
func ConvertAt(snap models.RateSnapshot, amount decimal.Decimal) models.Amount {
	return FormatAmount(amount.Mul(snap.Rate), snap.Quote)
}

// TransactionViews decorates transactions with their converted amount and
// category display attributes.
func TransactionViews(txs []models.Transaction, snap models.RateSnapshot) []models.TransactionView {
	views := make([]models.TransactionView, 0, len(txs))
	for _, t := range txs {
		d := t.Category.Display()
		views = append(views, models.TransactionView{
			Transaction: t,
			Converted:   ConvertAt(snap, t.Amount),
			Icon:        d.Icon,
			Label:       d.Label,
		})
	}
	return views
}

// recentTransactions returns the newest transactions across all accounts.
// Same-day transactions keep ID order.
func recentTransactions(accounts []models.Account, snap models.RateSnapshot, limit int) []models.TransactionView {
	var all []models.Transaction
	for _, a := range accounts {
		all = append(all, a.Transactions...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date.Time) {
			return all[i].Date.After(all[j].Date.Time)
		}
		return all[i].ID < all[j].ID
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return TransactionViews(all, snap)
}

func insights(f models.Fixtures, snap models.RateSnapshot) []models.Insight {
	out := []models.Insight{}

	if isa, ok := f.Account(models.AccountKindISA); ok && isa.Allowance != nil {
		out = append(out, models.Insight{
			Kind:  "isa_allowance",
			Title: "ISA allowance reminder",
			Message: fmt.Sprintf("You still have %s of your annual ISA allowance remaining. Consider using it before April 5th.",
				ConvertAt(snap, isa.Allowance.Remaining()).Formatted),
		})
	}
	if sipp, ok := f.Account(models.AccountKindSIPP); ok && sipp.Allowance != nil {
		out = append(out, models.Insight{
			Kind:  "pension_allowance",
			Title: "Pension annual allowance",
			Message: fmt.Sprintf("You have used %s%% of your pension annual allowance, %s is still available.",
				sipp.Allowance.UsedPercentage().String(), ConvertAt(snap, sipp.Allowance.Remaining()).Formatted),
		})
	}
	if current, ok := f.Account(models.AccountKindCurrent); ok && len(current.Transactions) > 0 {
		net := NetCashFlow(current.Transactions)
		formatted := ConvertAt(snap, net).Formatted
		title := "Positive cash flow"
		if net.IsNegative() {
			title = "Negative cash flow"
		} else {
			formatted = "+" + formatted
		}
		out = append(out, models.Insight{
			Kind:    "cash_flow",
			Title:   title,
			Message: fmt.Sprintf("Money in vs out this period: %s.", formatted),
		})
	}
	return out
}

// NetCashFlow sums income and expenses. Transfers between own accounts are
// left out.
func NetCashFlow(txs []models.Transaction) decimal.Decimal {
	net := decimal.Zero
	for _, t := range txs {
		if t.Type == models.TransactionTransfer {
			continue
		}
		net = net.Add(t.Amount)
	}
	return net
}
