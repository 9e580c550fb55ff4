package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Holding is one category of a sub-portfolio, expressed as a percentage of
// that sub-portfolio's base value (30 = 30%).
type Holding struct {
	Category   string          `json:"category"`
	Percentage decimal.Decimal `json:"percentage"`
}

// SubPortfolio is one account's holdings relative to its own base value.
// Label is informational and never used for merging.
type SubPortfolio struct {
	Label     string          `json:"label,omitempty"`
	BaseValue decimal.Decimal `json:"base_value"`
	Holdings  []Holding       `json:"holdings"`
}

// AllocationEntry is one category of a combined allocation, as a whole
// percentage of the combined base.
type AllocationEntry struct {
	Category   string `json:"category"`
	Percentage int64  `json:"percentage"`
}

// CombinedAllocation is the merged breakdown of a set of sub-portfolios.
// Entries are sorted descending by percentage, ties by ascending category.
type CombinedAllocation struct {
	Entries      []AllocationEntry `json:"entries"`
	CombinedBase decimal.Decimal   `json:"combined_base"`
}

// Total returns the sum of the rounded entry percentages.
func (c CombinedAllocation) Total() int64 {
	var total int64
	for _, e := range c.Entries {
		total += e.Percentage
	}
	return total
}

// MarshalJSON always emits an array for entries, never null.
func (c CombinedAllocation) MarshalJSON() ([]byte, error) {
	type plain CombinedAllocation
	if c.Entries == nil {
		c.Entries = []AllocationEntry{}
	}
	return json.Marshal(plain(c))
}

// AggregateRequest is the request body for POST /allocations/aggregate
type AggregateRequest struct {
	SubPortfolios []SubPortfolio `json:"sub_portfolios" binding:"required"`
}

// ChartSlice is an allocation entry decorated with its display attributes.
type ChartSlice struct {
	Category   string `json:"category"`
	Label      string `json:"label"`
	Color      string `json:"color"`
	Percentage int64  `json:"percentage"`
}

// AggregateResponse is the response for the aggregation endpoints
type AggregateResponse struct {
	Allocation CombinedAllocation `json:"allocation"`
	Chart      []ChartSlice       `json:"chart"`
	Warnings   []Warning          `json:"warnings,omitempty"`
}
