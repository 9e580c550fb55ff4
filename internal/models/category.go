package models

import (
	"encoding/json"
	"fmt"
)

// AssetCategory is an asset class shown in allocation charts.
type AssetCategory int

const (
	AssetOther AssetCategory = iota
	AssetCash
	AssetUKEquities
	AssetUSEquities
	AssetGlobalEquities
	AssetEuropeEquities
	AssetEmergingMarkets
	AssetBonds
	AssetCorporateBonds
	AssetGovernmentBonds
	AssetProperty
)

// DisplayAttributes are the presentation properties of a category.
type DisplayAttributes struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

// assetDisplay must have an entry for every AssetCategory.
var assetDisplay = map[AssetCategory]DisplayAttributes{
	AssetOther:           {Label: "Other", Color: "#9CA3AF"},
	AssetCash:            {Label: "Cash", Color: "#6B7280"},
	AssetUKEquities:      {Label: "UK Equities", Color: "#4F46E5"},
	AssetUSEquities:      {Label: "US Equities", Color: "#10B981"},
	AssetGlobalEquities:  {Label: "Global Equities", Color: "#3B82F6"},
	AssetEuropeEquities:  {Label: "Europe Equities", Color: "#F59E0B"},
	AssetEmergingMarkets: {Label: "Emerging Markets", Color: "#EF4444"},
	AssetBonds:           {Label: "Bonds", Color: "#8B5CF6"},
	AssetCorporateBonds:  {Label: "Corporate Bonds", Color: "#A78BFA"},
	AssetGovernmentBonds: {Label: "Government Bonds", Color: "#7C3AED"},
	AssetProperty:        {Label: "Property", Color: "#EC4899"},
}

var assetByLabel = func() map[string]AssetCategory {
	m := make(map[string]AssetCategory, len(assetDisplay))
	for c, d := range assetDisplay {
		m[d.Label] = c
	}
	return m
}()

// AssetCategories lists every known asset category in declaration order.
func AssetCategories() []AssetCategory {
	out := make([]AssetCategory, 0, len(assetDisplay))
	for c := AssetOther; c <= AssetProperty; c++ {
		out = append(out, c)
	}
	return out
}

// ParseAssetCategory maps a category name to its enum value. Names are
// matched exactly; an unknown name returns AssetOther and ok=false.
func ParseAssetCategory(name string) (AssetCategory, bool) {
	c, ok := assetByLabel[name]
	if !ok {
		return AssetOther, false
	}
	return c, true
}

// Display returns the display attributes of the category.
func (c AssetCategory) Display() DisplayAttributes {
	if d, ok := assetDisplay[c]; ok {
		return d
	}
	return assetDisplay[AssetOther]
}

func (c AssetCategory) String() string { return c.Display().Label }

// TransactionType is the direction of a current account transaction.
type TransactionType string

const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionIncome, TransactionExpense, TransactionTransfer:
		return true
	}
	return false
}

// TransactionCategory classifies a transaction for icons and spending reports.
type TransactionCategory string

const (
	CategoryIncome        TransactionCategory = "income"
	CategoryShopping      TransactionCategory = "shopping"
	CategoryFood          TransactionCategory = "food"
	CategoryTransfer      TransactionCategory = "transfer"
	CategoryBills         TransactionCategory = "bills"
	CategoryHousing       TransactionCategory = "housing"
	CategoryTransport     TransactionCategory = "transport"
	CategoryEntertainment TransactionCategory = "entertainment"
	CategoryOther         TransactionCategory = "other"
)

// transactionDisplay must have an entry for every TransactionCategory.
var transactionDisplay = map[TransactionCategory]DisplayAttributes{
	CategoryIncome:        {Label: "Income", Icon: "arrow-down-left", Color: "#16A34A"},
	CategoryShopping:      {Label: "Shopping", Icon: "shopping-bag", Color: "#DC2626"},
	CategoryFood:          {Label: "Food & Dining", Icon: "coffee", Color: "#F97316"},
	CategoryTransfer:      {Label: "Transfer", Icon: "arrow-left-right", Color: "#2563EB"},
	CategoryBills:         {Label: "Bills & Utilities", Icon: "receipt", Color: "#0EA5E9"},
	CategoryHousing:       {Label: "Housing", Icon: "home", Color: "#4F46E5"},
	CategoryTransport:     {Label: "Transportation", Icon: "car", Color: "#14B8A6"},
	CategoryEntertainment: {Label: "Entertainment", Icon: "film", Color: "#EC4899"},
	CategoryOther:         {Label: "Other", Icon: "credit-card", Color: "#6B7280"},
}

// TransactionCategories lists every transaction category.
func TransactionCategories() []TransactionCategory {
	return []TransactionCategory{
		CategoryIncome, CategoryShopping, CategoryFood, CategoryTransfer, CategoryBills,
		CategoryHousing, CategoryTransport, CategoryEntertainment, CategoryOther,
	}
}

// Valid reports whether c is a known transaction category.
func (c TransactionCategory) Valid() bool {
	_, ok := transactionDisplay[c]
	return ok
}

// Display returns the display attributes of the category.
func (c TransactionCategory) Display() DisplayAttributes {
	if d, ok := transactionDisplay[c]; ok {
		return d
	}
	return transactionDisplay[CategoryOther]
}

// UnmarshalJSON rejects unknown categories instead of letting them fall through.
func (c *TransactionCategory) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v := TransactionCategory(s)
	if !v.Valid() {
		return fmt.Errorf("unknown transaction category %q", s)
	}
	*c = v
	return nil
}
