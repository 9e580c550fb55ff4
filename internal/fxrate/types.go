package fxrate

import (
	"time"

	"github.com/shopspring/decimal"
)

// LatestResponse represents the exchangerate-api /v4/latest/{base} response
type LatestResponse struct {
	Provider        string                     `json:"provider"`
	Base            string                     `json:"base"`
	Date            string                     `json:"date"`
	TimeLastUpdated int64                      `json:"time_last_updated"`
	Rates           map[string]decimal.Decimal `json:"rates"`
}

// ErrorResponse is returned by the API with a 200 status for unknown bases
type ErrorResponse struct {
	Result    string `json:"result"`
	ErrorType string `json:"error-type"`
}

// ParsedRate represents a single base/quote rate ready for use.
// UpdatedAt is the provider's publish time, zero when the response omits it.
type ParsedRate struct {
	Base      string
	Quote     string
	Rate      decimal.Decimal
	UpdatedAt time.Time
}
