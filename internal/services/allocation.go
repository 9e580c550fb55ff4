package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/epeers/wealthboard/internal/models"
	"github.com/shopspring/decimal"
)

// ErrInvalidInput is matched by every *InvalidInputError via errors.Is.
var ErrInvalidInput = errors.New("invalid allocation input")

var hundred = decimal.NewFromInt(100)

// InvalidInputError reports a malformed sub-portfolio. Index is the position
// of the offending sub-portfolio; Holding is -1 when the base value is at fault.
type InvalidInputError struct {
	Index   int
	Holding int
	Reason  string
}

func (e *InvalidInputError) Error() string {
	if e.Holding < 0 {
		return fmt.Sprintf("sub_portfolios[%d]: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("sub_portfolios[%d].holdings[%d]: %s", e.Index, e.Holding, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

func validateSubPortfolios(subs []models.SubPortfolio) error {
	for i, sp := range subs {
		if sp.BaseValue.IsNegative() {
			return &InvalidInputError{Index: i, Holding: -1, Reason: fmt.Sprintf("base value %s is negative", sp.BaseValue)}
		}
		for j, h := range sp.Holdings {
			if h.Percentage.IsNegative() || h.Percentage.GreaterThan(hundred) {
				return &InvalidInputError{Index: i, Holding: j, Reason: fmt.Sprintf("percentage %s of %q is outside [0,100]", h.Percentage, h.Category)}
			}
		}
	}
	return nil
}

// Aggregate merges sub-portfolios, each expressed as percentages of its own
// base value, into whole percentages of the combined base.
// Categories merge by exact name. Each entry is rounded half-up on its own,
// so the total may drift from 100 (see AllocationDrift).
// A zero combined base yields no entries.
func Aggregate(subs []models.SubPortfolio) (models.CombinedAllocation, error) {
	if err := validateSubPortfolios(subs); err != nil {
		return models.CombinedAllocation{}, err
	}

	combinedBase := decimal.Zero
	for _, sp := range subs {
		combinedBase = combinedBase.Add(sp.BaseValue)
	}
	if combinedBase.IsZero() {
		return models.CombinedAllocation{CombinedBase: combinedBase}, nil
	}

	// percentage * base summed per category: 100 times the category's value
	weighted := make(map[string]decimal.Decimal)
	for _, sp := range subs {
		if sp.BaseValue.IsZero() {
			continue
		}
		for _, h := range sp.Holdings {
			weighted[h.Category] = weighted[h.Category].Add(h.Percentage.Mul(sp.BaseValue))
		}
	}

	entries := make([]models.AllocationEntry, 0, len(weighted))
	for category, w := range weighted {
		entries = append(entries, models.AllocationEntry{
			Category:   category,
			Percentage: roundHalfUpQuo(w, combinedBase),
		})
	}
	SortAllocation(entries)

	return models.CombinedAllocation{Entries: entries, CombinedBase: combinedBase}, nil
}

// roundHalfUpQuo returns n/d rounded half-up to a whole number without an
// intermediate rounding of the quotient. n and d are non-negative, d non-zero.
func roundHalfUpQuo(n, d decimal.Decimal) int64 {
	q, r := n.QuoRem(d, 0)
	if r.Add(r).GreaterThanOrEqual(d) {
		q = q.Add(decimal.NewFromInt(1))
	}
	return q.IntPart()
}

// SortAllocation orders entries descending by percentage, ties by ascending category.
func SortAllocation(entries []models.AllocationEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Percentage != entries[j].Percentage {
			return entries[i].Percentage > entries[j].Percentage
		}
		return entries[i].Category < entries[j].Category
	})
}

// AggregateAccounts aggregates the dashboard accounts. The current account
// counts as 100% cash.
func AggregateAccounts(accounts []models.Account) (models.CombinedAllocation, error) {
	subs := make([]models.SubPortfolio, 0, len(accounts))
	for _, a := range accounts {
		subs = append(subs, a.SubPortfolio())
	}
	return Aggregate(subs)
}

// AllocationDrift returns 100 minus the sum of the rounded percentages.
// It is zero for an empty allocation.
func AllocationDrift(c models.CombinedAllocation) int64 {
	if len(c.Entries) == 0 {
		return 0
	}
	return 100 - c.Total()
}

// ChartSlices decorates entries with display attributes. Unknown categories
// keep their own name as label and get the "Other" colour.
func ChartSlices(c models.CombinedAllocation) []models.ChartSlice {
	slices := make([]models.ChartSlice, 0, len(c.Entries))
	for _, e := range c.Entries {
		cat, ok := models.ParseAssetCategory(e.Category)
		d := cat.Display()
		label := d.Label
		if !ok {
			label = e.Category
		}
		slices = append(slices, models.ChartSlice{
			Category:   e.Category,
			Label:      label,
			Color:      d.Color,
			Percentage: e.Percentage,
		})
	}
	return slices
}
