package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountKind identifies one of the dashboard accounts
type AccountKind string

const (
	AccountKindCurrent AccountKind = "current"
	AccountKindISA     AccountKind = "isa"
	AccountKindSIPP    AccountKind = "sipp"
)

// AccountKinds lists the account kinds in dashboard order.
func AccountKinds() []AccountKind {
	return []AccountKind{AccountKindCurrent, AccountKindISA, AccountKindSIPP}
}

// ParseAccountKind validates a kind taken from a URL or a database row.
func ParseAccountKind(s string) (AccountKind, error) {
	switch k := AccountKind(s); k {
	case AccountKindCurrent, AccountKindISA, AccountKindSIPP:
		return k, nil
	}
	return "", fmt.Errorf("unknown account kind %q", s)
}

// Change is a period-over-period movement of an account.
type Change struct {
	Value      decimal.Decimal `json:"value"`
	Percentage decimal.Decimal `json:"percentage"`
	IsPositive bool            `json:"is_positive"`
}

// Allowance is a yearly tax wrapper allowance (ISA subscription, pension
// annual allowance).
type Allowance struct {
	Used  decimal.Decimal `json:"used"`
	Total decimal.Decimal `json:"total"`
}

// Remaining returns the unused part of the allowance, never below zero.
func (a Allowance) Remaining() decimal.Decimal {
	r := a.Total.Sub(a.Used)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// UsedPercentage returns used/total as a percentage rounded to one decimal.
func (a Allowance) UsedPercentage() decimal.Decimal {
	if a.Total.IsZero() {
		return decimal.Zero
	}
	return a.Used.Div(a.Total).Mul(decimal.NewFromInt(100)).Round(1)
}

// BalancePoint is one point of a balance history series.
type BalancePoint struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// Investment is one line of an investment account's holdings table.
// Allocation is the percentage of the account it makes up.
type Investment struct {
	Name       string          `json:"name"`
	Ticker     string          `json:"ticker"`
	Allocation decimal.Decimal `json:"allocation"`
	Value      decimal.Decimal `json:"value"`
	Change     Change          `json:"change"`
	Units      decimal.Decimal `json:"units"`
}

// PerformancePoint is one period's return of the account next to its
// benchmark's, both in percent.
type PerformancePoint struct {
	Label     string          `json:"label"`
	Return    decimal.Decimal `json:"return"`
	Benchmark decimal.Decimal `json:"benchmark"`
}

// ContributionPoint is the money paid into a pension in one period.
type ContributionPoint struct {
	Label    string          `json:"label"`
	Personal decimal.Decimal `json:"personal"`
	Employer decimal.Decimal `json:"employer"`
}

// Total returns personal plus employer contributions.
func (c ContributionPoint) Total() decimal.Decimal { return c.Personal.Add(c.Employer) }

// ProjectionPoint is the projected account value at a future date under
// three growth scenarios.
type ProjectionPoint struct {
	Label       string          `json:"label"`
	Pessimistic decimal.Decimal `json:"pessimistic"`
	Expected    decimal.Decimal `json:"expected"`
	Optimistic  decimal.Decimal `json:"optimistic"`
}

// Transaction is a current account movement. Amount is negative for money out.
type Transaction struct {
	ID          string              `json:"id"`
	Date        FlexibleDate        `json:"date"`
	Description string              `json:"description"`
	Amount      decimal.Decimal     `json:"amount"`
	Type        TransactionType     `json:"type"`
	Category    TransactionCategory `json:"category"`
}

// Account is the static data behind one dashboard account.
// Balances are in the fixtures' base currency.
type Account struct {
	Kind          AccountKind     `json:"kind"`
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"`
	MonthlyChange Change          `json:"monthly_change"`
	Allocation    []Holding       `json:"allocation,omitempty"`
	Sectors       []Holding       `json:"sectors,omitempty"`
	Allowance     *Allowance      `json:"allowance,omitempty"`
	Transactions  []Transaction   `json:"transactions,omitempty"`
	History       []BalancePoint  `json:"history,omitempty"`

	Investments   []Investment        `json:"investments,omitempty"`
	Benchmark     string              `json:"benchmark,omitempty"`
	Performance   []PerformancePoint  `json:"performance,omitempty"`
	Contributions []ContributionPoint `json:"contributions,omitempty"`
	Projections   []ProjectionPoint   `json:"projections,omitempty"`
}

// SubPortfolio returns the account as an allocation input. The current
// account is held entirely as cash.
func (a Account) SubPortfolio() SubPortfolio {
	holdings := a.Allocation
	if a.Kind == AccountKindCurrent {
		holdings = []Holding{{Category: AssetCash.String(), Percentage: decimal.NewFromInt(100)}}
	}
	return SubPortfolio{
		Label:     a.Name,
		BaseValue: a.Balance,
		Holdings:  holdings,
	}
}

// FAQItem is one question on the help page.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQSection groups help questions under a heading.
type FAQSection struct {
	Category  string    `json:"category"`
	Questions []FAQItem `json:"questions"`
}

// Fixtures is the complete account data set handed to the services at startup.
type Fixtures struct {
	BaseCurrency string       `json:"base_currency"`
	Accounts     []Account    `json:"accounts"`
	FAQ          []FAQSection `json:"faq,omitempty"`
}

// Account returns the account of the given kind.
func (f Fixtures) Account(kind AccountKind) (Account, bool) {
	for _, a := range f.Accounts {
		if a.Kind == kind {
			return a, true
		}
	}
	return Account{}, false
}

// Validate checks that kinds are known and unique, that transactions use
// known types and that investment, performance and projection rows are
// consistent.
func (f Fixtures) Validate() error {
	if f.BaseCurrency == "" {
		return fmt.Errorf("fixtures: base_currency is required")
	}
	seen := make(map[AccountKind]struct{}, len(f.Accounts))
	for i, a := range f.Accounts {
		if _, err := ParseAccountKind(string(a.Kind)); err != nil {
			return fmt.Errorf("fixtures: account[%d]: %w", i, err)
		}
		if _, dup := seen[a.Kind]; dup {
			return fmt.Errorf("fixtures: account[%d]: duplicate kind %q", i, a.Kind)
		}
		seen[a.Kind] = struct{}{}
		for j, t := range a.Transactions {
			if !t.Type.Valid() {
				return fmt.Errorf("fixtures: account[%d] transaction[%d]: unknown type %q", i, j, t.Type)
			}
		}
		if err := a.validateInvestments(); err != nil {
			return fmt.Errorf("fixtures: account[%d]: %w", i, err)
		}
	}

	categories := make(map[string]struct{}, len(f.FAQ))
	for i, s := range f.FAQ {
		if s.Category == "" {
			return fmt.Errorf("fixtures: faq[%d]: category is required", i)
		}
		if _, dup := categories[strings.ToLower(s.Category)]; dup {
			return fmt.Errorf("fixtures: faq[%d]: duplicate category %q", i, s.Category)
		}
		categories[strings.ToLower(s.Category)] = struct{}{}
		for j, q := range s.Questions {
			if q.Question == "" || q.Answer == "" {
				return fmt.Errorf("fixtures: faq[%d] question[%d]: question and answer are required", i, j)
			}
		}
	}
	return nil
}

func (a Account) validateInvestments() error {
	hundred := decimal.NewFromInt(100)
	for j, inv := range a.Investments {
		if inv.Name == "" {
			return fmt.Errorf("investment[%d]: name is required", j)
		}
		if inv.Allocation.IsNegative() || inv.Allocation.GreaterThan(hundred) {
			return fmt.Errorf("investment[%d]: allocation %s is outside [0,100]", j, inv.Allocation)
		}
		if inv.Units.IsNegative() || inv.Value.IsNegative() {
			return fmt.Errorf("investment[%d]: units and value must not be negative", j)
		}
	}
	if len(a.Performance) > 0 && a.Benchmark == "" {
		return fmt.Errorf("performance needs a benchmark name")
	}
	for j, p := range a.Projections {
		if p.Pessimistic.GreaterThan(p.Expected) || p.Expected.GreaterThan(p.Optimistic) {
			return fmt.Errorf("projection[%d] %q: scenarios must satisfy pessimistic <= expected <= optimistic", j, p.Label)
		}
	}
	return nil
}
