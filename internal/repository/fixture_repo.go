package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/epeers/wealthboard/internal/models"
	"github.com/shopspring/decimal"
)

// FixtureRepository serves a fixed account data set held in memory
type FixtureRepository struct {
	fixtures models.Fixtures
}

// NewFixtureRepository creates a new FixtureRepository
func NewFixtureRepository(fixtures models.Fixtures) *FixtureRepository {
	return &FixtureRepository{fixtures: fixtures}
}

// Load returns the fixtures. Callers must not modify the returned slices.
func (r *FixtureRepository) Load(_ context.Context) (models.Fixtures, error) {
	return r.fixtures, nil
}

// LoadFixturesFile reads a JSON fixtures file and validates it
func LoadFixturesFile(path string) (models.Fixtures, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Fixtures{}, fmt.Errorf("failed to open fixtures: %w", err)
	}
	defer f.Close()

	var fixtures models.Fixtures
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fixtures); err != nil {
		return models.Fixtures{}, fmt.Errorf("failed to decode fixtures %s: %w", path, err)
	}
	if err := fixtures.Validate(); err != nil {
		return models.Fixtures{}, err
	}
	return fixtures, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func holdings(pairs ...any) []models.Holding {
	out := make([]models.Holding, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.Holding{Category: pairs[i].(string), Percentage: decimal.NewFromInt(int64(pairs[i+1].(int)))})
	}
	return out
}

func history(labels []string, values ...int64) []models.BalancePoint {
	out := make([]models.BalancePoint, len(values))
	for i, v := range values {
		out[i] = models.BalancePoint{Label: labels[i], Value: decimal.NewFromInt(v)}
	}
	return out
}

func investment(name, ticker string, allocation int64, value, change, changePct string, units int64) models.Investment {
	c := dec(change)
	return models.Investment{
		Name:       name,
		Ticker:     ticker,
		Allocation: decimal.NewFromInt(allocation),
		Value:      dec(value),
		Change:     models.Change{Value: c, Percentage: dec(changePct), IsPositive: !c.IsNegative()},
		Units:      decimal.NewFromInt(units),
	}
}

// performance pairs yearly account returns with the benchmark's, from 2020
func performance(account, benchmark []string) []models.PerformancePoint {
	out := make([]models.PerformancePoint, len(account))
	for i := range account {
		out[i] = models.PerformancePoint{
			Label:     fmt.Sprint(2020 + i),
			Return:    dec(account[i]),
			Benchmark: dec(benchmark[i]),
		}
	}
	return out
}

// DefaultFixtures returns the built-in demo accounts, in GBP.
func DefaultFixtures() models.Fixtures {
	months := []string{"Oct", "Nov", "Dec", "Jan", "Feb", "Mar"}
	// both investment accounts track the same global tracker in the demo data
	yearly := []string{"6.2", "12.4", "-4.5", "8.6", "7.2", "2.8"}
	vwrl := []string{"5.8", "11.9", "-5.8", "7.9", "6.8", "2.4"}

	return models.Fixtures{
		BaseCurrency: "GBP",
		Accounts: []models.Account{
			{
				Kind:    models.AccountKindCurrent,
				Name:    "Current Account",
				Balance: dec("3542.19"),
				MonthlyChange: models.Change{
					Value:      dec("1790.00"),
					Percentage: dec("12.5"),
					IsPositive: false,
				},
				Transactions: []models.Transaction{
					{ID: "1", Date: models.Date(2025, 3, 10), Description: "Salary payment", Amount: dec("2500"), Type: models.TransactionIncome, Category: models.CategoryIncome},
					{ID: "2", Date: models.Date(2025, 3, 8), Description: "Tesco", Amount: dec("-65.20"), Type: models.TransactionExpense, Category: models.CategoryShopping},
					{ID: "3", Date: models.Date(2025, 3, 7), Description: "Costa Coffee", Amount: dec("-4.75"), Type: models.TransactionExpense, Category: models.CategoryFood},
					{ID: "4", Date: models.Date(2025, 3, 6), Description: "Amazon", Amount: dec("-29.99"), Type: models.TransactionExpense, Category: models.CategoryShopping},
					{ID: "5", Date: models.Date(2025, 3, 5), Description: "ISA contribution", Amount: dec("-200"), Type: models.TransactionTransfer, Category: models.CategoryTransfer},
					{ID: "6", Date: models.Date(2025, 3, 3), Description: "Phone bill", Amount: dec("-45.99"), Type: models.TransactionExpense, Category: models.CategoryBills},
					{ID: "7", Date: models.Date(2025, 3, 1), Description: "Rent payment", Amount: dec("-800"), Type: models.TransactionExpense, Category: models.CategoryHousing},
				},
				History: history(months, 3250, 3320, 3380, 3400, 3480, 3542),
			},
			{
				Kind:    models.AccountKindISA,
				Name:    "Stocks & Shares ISA",
				Balance: dec("12650.80"),
				MonthlyChange: models.Change{
					Value:      dec("320.40"),
					Percentage: dec("2.6"),
					IsPositive: true,
				},
				Allocation: holdings(
					"UK Equities", 30,
					"US Equities", 40,
					"Europe Equities", 15,
					"Emerging Markets", 10,
					"Bonds", 5,
				),
				Sectors: holdings(
					"Technology", 25,
					"Financial", 20,
					"Healthcare", 15,
					"Consumer", 15,
					"Energy", 10,
					"Utilities", 5,
					"Other", 10,
				),
				Allowance: &models.Allowance{Used: dec("11360.00"), Total: dec("20000.00")},
				History:   history(months, 10500, 11200, 10800, 11500, 12100, 12650),
				Investments: []models.Investment{
					investment("Apple Inc.", "AAPL", 8, "1012.06", "28.40", "2.8", 5),
					investment("Microsoft Corp.", "MSFT", 7, "885.56", "15.30", "1.7", 2),
					investment("HSBC Holdings", "HSBA.L", 6, "759.05", "-5.20", "0.7", 100),
					investment("AstraZeneca", "AZN.L", 6, "759.05", "25.80", "3.4", 8),
					investment("UK Gilt 4% 2030", "GB00BN65R313", 5, "632.54", "-4.80", "0.8", 600),
					investment("Volkswagen AG", "VOW3.DE", 5, "632.54", "12.40", "2.0", 4),
					investment("Nestlé SA", "NESN.SW", 5, "632.54", "8.90", "1.4", 6),
					investment("Samsung Electronics", "005930.KS", 5, "632.54", "18.60", "3.0", 12),
					investment("US Treasury 3.5% 2028", "US912828YM69", 5, "632.54", "-3.20", "0.5", 650),
				},
				Benchmark:   "VWRL",
				Performance: performance(yearly, vwrl),
			},
			{
				Kind:    models.AccountKindSIPP,
				Name:    "SIPP",
				Balance: dec("45872.32"),
				MonthlyChange: models.Change{
					Value:      dec("1230.85"),
					Percentage: dec("2.8"),
					IsPositive: true,
				},
				Allocation: holdings(
					"Global Equities", 60,
					"UK Equities", 15,
					"Bonds", 20,
					"Property", 5,
				),
				Sectors: holdings(
					"Technology", 25,
					"Financial Services", 20,
					"Healthcare", 15,
					"Consumer Goods", 12,
					"Industrials", 10,
					"Energy", 8,
					"Utilities", 5,
					"Real Estate", 5,
				),
				Allowance: &models.Allowance{Used: dec("12000"), Total: dec("60000")},
				Investments: []models.Investment{
					investment("Vanguard FTSE Global All Cap", "VWRL.L", 40, "18348.93", "495.42", "2.8", 150),
					investment("iShares Core FTSE 100", "ISF.L", 15, "6880.85", "165.14", "2.4", 800),
					investment("Vanguard UK Corporate Bond", "VUKE.L", 10, "4587.23", "-45.87", "1.0", 400),
					investment("iShares UK Gilts 0-5yr", "IGLS.L", 10, "4587.23", "-22.94", "0.5", 450),
					investment("iShares Global Property", "IWDP.L", 5, "2293.62", "68.81", "3.1", 200),
					investment("Vanguard FTSE Emerging Markets", "VFEM.L", 12, "5502.68", "165.08", "3.1", 450),
					investment("iShares MSCI Europe ex-UK", "IEUX.L", 8, "3671.78", "88.12", "2.5", 300),
				},
				Benchmark:   "VWRL",
				Performance: performance(yearly, vwrl),
				Contributions: []models.ContributionPoint{
					{Label: "2020", Personal: dec("3600"), Employer: dec("5400")},
					{Label: "2021", Personal: dec("4000"), Employer: dec("6000")},
					{Label: "2022", Personal: dec("4200"), Employer: dec("6300")},
					{Label: "2023", Personal: dec("4400"), Employer: dec("6600")},
					{Label: "2024", Personal: dec("4600"), Employer: dec("6900")},
					{Label: "2025", Personal: dec("4800"), Employer: dec("7200")},
				},
				Projections: []models.ProjectionPoint{
					{Label: "2025", Pessimistic: dec("45000"), Expected: dec("46000"), Optimistic: dec("47000")},
					{Label: "2030", Pessimistic: dec("75000"), Expected: dec("90000"), Optimistic: dec("105000")},
					{Label: "2035", Pessimistic: dec("115000"), Expected: dec("145000"), Optimistic: dec("175000")},
					{Label: "2040", Pessimistic: dec("165000"), Expected: dec("220000"), Optimistic: dec("275000")},
					{Label: "2045", Pessimistic: dec("220000"), Expected: dec("320000"), Optimistic: dec("420000")},
					{Label: "2050", Pessimistic: dec("290000"), Expected: dec("450000"), Optimistic: dec("610000")},
				},
			},
		},
		FAQ: defaultFAQ(),
	}
}

func defaultFAQ() []models.FAQSection {
	return []models.FAQSection{
		{
			Category: "General",
			Questions: []models.FAQItem{
				{Question: "What is Eagle Banking?", Answer: "Eagle Banking is a digital bank offering current accounts, investment accounts (ISA), and pension services (SIPP) all in one place."},
				{Question: "Is Eagle Banking regulated?", Answer: "Yes, Eagle Banking is regulated by the Financial Conduct Authority (FCA) and your deposits are protected by the Financial Services Compensation Scheme (FSCS) up to £85,000."},
				{Question: "How do I contact customer support?", Answer: "You can reach our customer support team 24/7 through in-app chat, email at support@eaglebanking.com, or phone at 0800 123 4567."},
			},
		},
		{
			Category: "Current Account",
			Questions: []models.FAQItem{
				{Question: "How do I open a current account?", Answer: `To open a current account, you need to be 18 or over and a UK resident. Simply click "Open Account" and follow the verification process.`},
				{Question: "What are the account fees?", Answer: "Our current account has no monthly fees. However, certain services like international transfers may incur charges."},
				{Question: "Can I use my card abroad?", Answer: "Yes, you can use your Eagle Banking card worldwide. We offer competitive exchange rates and no foreign transaction fees."},
			},
		},
		{
			Category: "Stocks & Shares ISA",
			Questions: []models.FAQItem{
				{Question: "What is a Stocks & Shares ISA?", Answer: "A Stocks & Shares ISA is a tax-efficient investment account that allows you to invest in stocks, bonds, and funds without paying tax on capital gains or dividends."},
				{Question: "What is the ISA allowance?", Answer: "The ISA allowance for the 2025/26 tax year is £20,000. This is the maximum amount you can invest across all your ISAs in one tax year."},
				{Question: "How do I transfer an existing ISA?", Answer: `You can transfer existing ISAs by selecting "Transfer ISA" in your account. We'll handle the transfer process with your current provider.`},
			},
		},
		{
			Category: "SIPP",
			Questions: []models.FAQItem{
				{Question: "What is a SIPP?", Answer: "A Self-Invested Personal Pension (SIPP) is a pension wrapper that lets you save, invest and manage your retirement savings tax-efficiently."},
				{Question: "What are the tax benefits?", Answer: "You receive tax relief on your pension contributions. Basic rate taxpayers get 20% relief, while higher and additional rate taxpayers can claim additional relief."},
				{Question: "When can I access my SIPP?", Answer: "You can access your SIPP from age 55 (rising to 57 in 2028). You can take up to 25% as a tax-free lump sum."},
			},
		},
	}
}
