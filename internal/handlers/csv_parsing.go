package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/epeers/wealthboard/internal/models"
	"github.com/shopspring/decimal"
)

// ParseSubPortfoliosCSV parses a holdings CSV into sub-portfolios.
// Required columns: portfolio, base_value, category, percentage.
// Rows sharing a portfolio label form one sub-portfolio, in order of first
// appearance, and must repeat the same base_value. Range checks on values
// are left to the aggregator.
func ParseSubPortfoliosCSV(r io.Reader) ([]models.SubPortfolio, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIdx := make(map[string]int)
	for i, col := range header {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"portfolio", "base_value", "category", "percentage"} {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var subs []models.SubPortfolio
	byLabel := make(map[string]int)
	rowNum := 1 // header is row 1, data starts at row 2
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: failed to read CSV record: %w", rowNum+1, err)
		}
		rowNum++

		label := strings.TrimSpace(record[colIdx["portfolio"]])
		if label == "" {
			return nil, fmt.Errorf("row %d: portfolio is empty", rowNum)
		}
		category := strings.TrimSpace(record[colIdx["category"]])
		if category == "" {
			return nil, fmt.Errorf("row %d: category is empty", rowNum)
		}

		baseStr := strings.TrimSpace(record[colIdx["base_value"]])
		base, err := decimal.NewFromString(baseStr)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid base_value %q", rowNum, baseStr)
		}
		pctStr := strings.TrimSuffix(strings.TrimSpace(record[colIdx["percentage"]]), "%")
		pct, err := decimal.NewFromString(pctStr)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid percentage %q", rowNum, pctStr)
		}

		idx, seen := byLabel[label]
		if !seen {
			idx = len(subs)
			byLabel[label] = idx
			subs = append(subs, models.SubPortfolio{Label: label, BaseValue: base})
		} else if !subs[idx].BaseValue.Equal(base) {
			return nil, fmt.Errorf("row %d: base_value %s for %q differs from earlier %s", rowNum, base, label, subs[idx].BaseValue)
		}
		subs[idx].Holdings = append(subs[idx].Holdings, models.Holding{Category: category, Percentage: pct})
	}

	return subs, nil
}
