package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Amount is a converted monetary value with its display string.
type Amount struct {
	Value     decimal.Decimal `json:"value"`
	Currency  string          `json:"currency"`
	Formatted string          `json:"formatted"`
}

// AccountCard summarizes one account on the dashboard
type AccountCard struct {
	Kind          AccountKind     `json:"kind"`
	Title         string          `json:"title"`
	Balance       Amount          `json:"balance"`
	Change        Amount          `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	IsPositive    bool            `json:"is_positive"`
	Link          string          `json:"link"`
}

// TransactionView is a transaction decorated for display
type TransactionView struct {
	Transaction
	Converted Amount `json:"converted"`
	Icon      string `json:"icon"`
	Label     string `json:"label"`
}

// Insight is a short informational message shown on the dashboard
type Insight struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// DashboardResponse is the response for GET /dashboard
type DashboardResponse struct {
	Accounts           []AccountCard      `json:"accounts"`
	TotalValue         Amount             `json:"total_value"`
	Allocation         CombinedAllocation `json:"allocation"`
	Chart              []ChartSlice       `json:"chart"`
	RecentTransactions []TransactionView  `json:"recent_transactions"`
	Insights           []Insight          `json:"insights"`
	Rate               RateSnapshot       `json:"rate"`
	Warnings           []Warning          `json:"warnings,omitempty"`
}

// AllowanceView is an allowance with derived figures
type AllowanceView struct {
	Used           Amount          `json:"used"`
	Total          Amount          `json:"total"`
	Remaining      Amount          `json:"remaining"`
	UsedPercentage decimal.Decimal `json:"used_percentage"`
}

// InvestmentView is an investment with converted amounts
type InvestmentView struct {
	Name          string          `json:"name"`
	Ticker        string          `json:"ticker"`
	Allocation    decimal.Decimal `json:"allocation"`
	Units         decimal.Decimal `json:"units"`
	Value         Amount          `json:"value"`
	Change        Amount          `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	IsPositive    bool            `json:"is_positive"`
}

// PerformanceView compares yearly returns with a benchmark. Cumulative
// figures compound the yearly ones and are rounded to one decimal.
type PerformanceView struct {
	Benchmark           string             `json:"benchmark"`
	Points              []PerformancePoint `json:"points"`
	CumulativeReturn    decimal.Decimal    `json:"cumulative_return"`
	CumulativeBenchmark decimal.Decimal    `json:"cumulative_benchmark"`
	Outperformance      decimal.Decimal    `json:"outperformance"`
}

// ContributionView is one period of pension contributions
type ContributionView struct {
	Label    string `json:"label"`
	Personal Amount `json:"personal"`
	Employer Amount `json:"employer"`
	Total    Amount `json:"total"`
}

// ProjectionView is one projected account value per scenario
type ProjectionView struct {
	Label       string `json:"label"`
	Pessimistic Amount `json:"pessimistic"`
	Expected    Amount `json:"expected"`
	Optimistic  Amount `json:"optimistic"`
}

// AccountResponse is the response for GET /accounts/:kind
type AccountResponse struct {
	Kind         AccountKind       `json:"kind"`
	Name         string            `json:"name"`
	Balance      Amount            `json:"balance"`
	Change       Amount            `json:"change"`
	Allocation   []ChartSlice      `json:"allocation,omitempty"`
	Sectors      []Holding         `json:"sectors,omitempty"`
	Allowance    *AllowanceView    `json:"allowance,omitempty"`
	Transactions []TransactionView `json:"transactions,omitempty"`
	History      []BalancePoint    `json:"history,omitempty"`

	Investments   []InvestmentView   `json:"investments,omitempty"`
	Performance   *PerformanceView   `json:"performance,omitempty"`
	Contributions []ContributionView `json:"contributions,omitempty"`
	Projections   []ProjectionView   `json:"projections,omitempty"`

	Warnings []Warning `json:"warnings,omitempty"`
}

// FAQResponse is the response for GET /help/faq
type FAQResponse struct {
	Sections []FAQSection `json:"sections"`
}

// SpendingCategory is one row of the spending breakdown
type SpendingCategory struct {
	Category   TransactionCategory `json:"category"`
	Label      string              `json:"label"`
	Color      string              `json:"color"`
	Total      Amount              `json:"total"`
	Percentage int64               `json:"percentage"`
}

// SpendingResponse is the response for GET /accounts/current/spending
type SpendingResponse struct {
	Total      Amount             `json:"total"`
	Categories []SpendingCategory `json:"categories"`
	Warnings   []Warning          `json:"warnings,omitempty"`
}

// RateSource tells where the rate used for conversion came from
type RateSource string

const (
	RateSourceLive     RateSource = "live"
	RateSourceStale    RateSource = "stale"
	RateSourceFallback RateSource = "fallback"
)

// RateSnapshot is the exchange rate currently used for conversion
type RateSnapshot struct {
	Base      string          `json:"base"`
	Quote     string          `json:"quote"`
	Rate      decimal.Decimal `json:"rate"`
	Source    RateSource      `json:"source"`
	FetchedAt *time.Time      `json:"fetched_at,omitempty"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// StoredRate is a persisted exchange rate. UpdatedAt is zero when the
// provider did not say when it published the rate.
type StoredRate struct {
	Base      string
	Quote     string
	Rate      decimal.Decimal
	FetchedAt time.Time
	UpdatedAt time.Time
}
