package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/wealthboard/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrUnknownAccountKind = errors.New("unknown account kind")
)

// AccountService builds per-account views
type AccountService struct {
	source   AccountSource
	currency *CurrencyService
}

// NewAccountService creates a new AccountService
func NewAccountService(source AccountSource, currency *CurrencyService) *AccountService {
	return &AccountService{
		source:   source,
		currency: currency,
	}
}

// account loads the data set and picks the account of the given kind
func (s *AccountService) account(ctx context.Context, kind string) (models.Account, string, error) {
	k, err := models.ParseAccountKind(kind)
	if err != nil {
		return models.Account{}, "", fmt.Errorf("%w: %q", ErrUnknownAccountKind, kind)
	}
	fixtures, err := s.source.Load(ctx)
	if err != nil {
		return models.Account{}, "", fmt.Errorf("failed to load accounts: %w", err)
	}
	a, ok := fixtures.Account(k)
	if !ok {
		return models.Account{}, "", fmt.Errorf("%w: %s", ErrAccountNotFound, k)
	}
	return a, fixtures.BaseCurrency, nil
}

// Get returns the view of one account
func (s *AccountService) Get(ctx context.Context, kind string) (*models.AccountResponse, error) {
	defer TrackTime("AccountService.Get", time.Now())

	a, baseCurrency, err := s.account(ctx, kind)
	if err != nil {
		return nil, err
	}
	snap := s.currency.Rate()
	s.currency.AddRateWarnings(ctx, snap)

	resp := &models.AccountResponse{
		Kind:         a.Kind,
		Name:         a.Name,
		Balance:      ConvertAt(snap, a.Balance),
		Change:       ConvertAt(snap, a.MonthlyChange.Value),
		Sectors:      a.Sectors,
		Transactions: TransactionViews(a.Transactions, snap),
		History:      a.History,
	}

	if len(a.Allocation) > 0 {
		// holdings are percentages already, so any non-zero base gives them back rounded
		breakdown, err := Aggregate([]models.SubPortfolio{{
			Label:     a.Name,
			BaseValue: decimal.NewFromInt(100),
			Holdings:  a.Allocation,
		}})
		if err != nil {
			return nil, fmt.Errorf("account %s allocation: %w", a.Kind, err)
		}
		resp.Allocation = ChartSlices(breakdown)
	}

	// allowances are statutory limits and stay in the account currency
	if a.Allowance != nil {
		resp.Allowance = &models.AllowanceView{
			Used:           FormatAmount(a.Allowance.Used, baseCurrency),
			Total:          FormatAmount(a.Allowance.Total, baseCurrency),
			Remaining:      FormatAmount(a.Allowance.Remaining(), baseCurrency),
			UsedPercentage: a.Allowance.UsedPercentage(),
		}
	}

	resp.Investments = investmentViews(a.Investments, snap)
	resp.Performance = performanceView(a.Benchmark, a.Performance)
	for _, c := range a.Contributions {
		resp.Contributions = append(resp.Contributions, models.ContributionView{
			Label:    c.Label,
			Personal: ConvertAt(snap, c.Personal),
			Employer: ConvertAt(snap, c.Employer),
			Total:    ConvertAt(snap, c.Total()),
		})
	}
	for _, p := range a.Projections {
		resp.Projections = append(resp.Projections, models.ProjectionView{
			Label:       p.Label,
			Pessimistic: ConvertAt(snap, p.Pessimistic),
			Expected:    ConvertAt(snap, p.Expected),
			Optimistic:  ConvertAt(snap, p.Optimistic),
		})
	}

	resp.Warnings = WarningsFromContext(ctx)
	return resp, nil
}

func investmentViews(investments []models.Investment, snap models.RateSnapshot) []models.InvestmentView {
	if len(investments) == 0 {
		return nil
	}
	views := make([]models.InvestmentView, 0, len(investments))
	for _, inv := range investments {
		views = append(views, models.InvestmentView{
			Name:          inv.Name,
			Ticker:        inv.Ticker,
			Allocation:    inv.Allocation,
			Units:         inv.Units,
			Value:         ConvertAt(snap, inv.Value),
			Change:        ConvertAt(snap, inv.Change.Value),
			ChangePercent: inv.Change.Percentage,
			IsPositive:    inv.Change.IsPositive,
		})
	}
	return views
}

// performanceView compounds the yearly returns of the account and its
// benchmark. It returns nil when there is no history.
func performanceView(benchmark string, points []models.PerformancePoint) *models.PerformanceView {
	if len(points) == 0 {
		return nil
	}
	rets := make([]decimal.Decimal, len(points))
	benches := make([]decimal.Decimal, len(points))
	for i, p := range points {
		rets[i] = p.Return
		benches[i] = p.Benchmark
	}
	account, bench := CompoundReturn(rets), CompoundReturn(benches)
	return &models.PerformanceView{
		Benchmark:           benchmark,
		Points:              points,
		CumulativeReturn:    account.Round(1),
		CumulativeBenchmark: bench.Round(1),
		Outperformance:      account.Sub(bench).Round(1),
	}
}

// CompoundReturn chains periodic percentage returns into a total
// percentage return: 10 then -10 gives -1.
func CompoundReturn(returns []decimal.Decimal) decimal.Decimal {
	growth := decimal.NewFromInt(1)
	for _, r := range returns {
		growth = growth.Mul(decimal.NewFromInt(1).Add(r.Div(hundred)))
	}
	return growth.Sub(decimal.NewFromInt(1)).Mul(hundred)
}

// Spending returns the current account's expenses grouped by category.
// Percentages are whole numbers of the total, ordered like allocations.
func (s *AccountService) Spending(ctx context.Context) (*models.SpendingResponse, error) {
	defer TrackTime("AccountService.Spending", time.Now())

	a, _, err := s.account(ctx, string(models.AccountKindCurrent))
	if err != nil {
		return nil, err
	}
	snap := s.currency.Rate()
	s.currency.AddRateWarnings(ctx, snap)

	totals := make(map[models.TransactionCategory]decimal.Decimal)
	var order []models.TransactionCategory
	for _, t := range a.Transactions {
		if t.Type != models.TransactionExpense {
			continue
		}
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount.Abs())
	}

	// each category is a fully held sub-portfolio sized by its spend
	subs := make([]models.SubPortfolio, 0, len(order))
	total := decimal.Zero
	for _, c := range order {
		total = total.Add(totals[c])
		subs = append(subs, models.SubPortfolio{
			Label:     string(c),
			BaseValue: totals[c],
			Holdings:  []models.Holding{{Category: string(c), Percentage: decimal.NewFromInt(100)}},
		})
	}
	breakdown, err := Aggregate(subs)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate spending: %w", err)
	}

	categories := make([]models.SpendingCategory, 0, len(breakdown.Entries))
	for _, e := range breakdown.Entries {
		c := models.TransactionCategory(e.Category)
		d := c.Display()
		categories = append(categories, models.SpendingCategory{
			Category:   c,
			Label:      d.Label,
			Color:      d.Color,
			Total:      ConvertAt(snap, totals[c]),
			Percentage: e.Percentage,
		})
	}

	return &models.SpendingResponse{
		Total:      ConvertAt(snap, total),
		Categories: categories,
		Warnings:   WarningsFromContext(ctx),
	}, nil
}
