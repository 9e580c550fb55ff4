package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/wealthboard/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoAccounts       = errors.New("no accounts stored")
	ErrMixedCurrencies  = errors.New("accounts are stored in more than one currency")
	ErrUnknownDimension = errors.New("unknown holding dimension")
)

// holding dimensions stored in account_holding.dimension
const (
	dimensionAllocation = "allocation"
	dimensionSector     = "sector"
)

// AccountRepository handles database operations for dashboard accounts
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// byKind holds the rows of one child table grouped by account
type byKind[T any] map[models.AccountKind][]T

// queryByKind runs query and groups the scanned rows by the account kind
// that scan returns. Rows keep query order within a kind.
func queryByKind[T any](ctx context.Context, pool *pgxpool.Pool, what, query string, scan func(pgx.Rows) (string, T, error)) (byKind[T], error) {
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", what, err)
	}
	defer rows.Close()

	out := make(byKind[T])
	for rows.Next() {
		kind, v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", what, err)
		}
		k := models.AccountKind(kind)
		out[k] = append(out[k], v)
	}
	return out, rows.Err()
}

type dimensionHolding struct {
	dimension string
	holding   models.Holding
}

// Load reads every account with its child rows and the help content.
// The tables are independent, so they are queried concurrently.
func (r *AccountRepository) Load(ctx context.Context) (models.Fixtures, error) {
	var (
		accounts      []models.Account
		currency      string
		holdings      byKind[dimensionHolding]
		transactions  byKind[models.Transaction]
		history       byKind[models.BalancePoint]
		investments   byKind[models.Investment]
		performance   byKind[models.PerformancePoint]
		contributions byKind[models.ContributionPoint]
		projections   byKind[models.ProjectionPoint]
		faq           []models.FAQSection
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		accounts, currency, err = r.getAccounts(gctx)
		return err
	})
	g.Go(func() (err error) {
		holdings, err = queryByKind(gctx, r.pool, "holdings", `
			SELECT account_kind, dimension, category, percentage
			FROM account_holding
			ORDER BY account_kind, dimension, position ASC
		`, func(rows pgx.Rows) (string, dimensionHolding, error) {
			var kind string
			var h dimensionHolding
			err := rows.Scan(&kind, &h.dimension, &h.holding.Category, &h.holding.Percentage)
			return kind, h, err
		})
		return err
	})
	g.Go(func() (err error) {
		transactions, err = queryByKind(gctx, r.pool, "transactions", `
			SELECT account_kind, id, date, description, amount, type, category
			FROM account_transaction
			ORDER BY date DESC, id ASC
		`, scanTransaction)
		return err
	})
	g.Go(func() (err error) {
		history, err = queryByKind(gctx, r.pool, "balance history", `
			SELECT account_kind, label, value
			FROM account_balance_history
			ORDER BY account_kind, position ASC
		`, func(rows pgx.Rows) (string, models.BalancePoint, error) {
			var kind string
			var p models.BalancePoint
			err := rows.Scan(&kind, &p.Label, &p.Value)
			return kind, p, err
		})
		return err
	})
	g.Go(func() (err error) {
		investments, err = queryByKind(gctx, r.pool, "investments", `
			SELECT account_kind, name, ticker, allocation, value, change_value, change_percentage,
			       change_positive, units
			FROM account_investment
			ORDER BY account_kind, position ASC
		`, func(rows pgx.Rows) (string, models.Investment, error) {
			var kind string
			var inv models.Investment
			err := rows.Scan(&kind, &inv.Name, &inv.Ticker, &inv.Allocation, &inv.Value,
				&inv.Change.Value, &inv.Change.Percentage, &inv.Change.IsPositive, &inv.Units)
			return kind, inv, err
		})
		return err
	})
	g.Go(func() (err error) {
		performance, err = queryByKind(gctx, r.pool, "performance", `
			SELECT account_kind, label, account_return, benchmark_return
			FROM account_performance
			ORDER BY account_kind, position ASC
		`, func(rows pgx.Rows) (string, models.PerformancePoint, error) {
			var kind string
			var p models.PerformancePoint
			err := rows.Scan(&kind, &p.Label, &p.Return, &p.Benchmark)
			return kind, p, err
		})
		return err
	})
	g.Go(func() (err error) {
		contributions, err = queryByKind(gctx, r.pool, "contributions", `
			SELECT account_kind, label, personal, employer
			FROM account_contribution
			ORDER BY account_kind, position ASC
		`, func(rows pgx.Rows) (string, models.ContributionPoint, error) {
			var kind string
			var c models.ContributionPoint
			err := rows.Scan(&kind, &c.Label, &c.Personal, &c.Employer)
			return kind, c, err
		})
		return err
	})
	g.Go(func() (err error) {
		projections, err = queryByKind(gctx, r.pool, "projections", `
			SELECT account_kind, label, pessimistic, expected, optimistic
			FROM account_projection
			ORDER BY account_kind, position ASC
		`, func(rows pgx.Rows) (string, models.ProjectionPoint, error) {
			var kind string
			var p models.ProjectionPoint
			err := rows.Scan(&kind, &p.Label, &p.Pessimistic, &p.Expected, &p.Optimistic)
			return kind, p, err
		})
		return err
	})
	g.Go(func() (err error) {
		faq, err = r.getFAQ(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Fixtures{}, err
	}
	if len(accounts) == 0 {
		return models.Fixtures{}, ErrNoAccounts
	}

	for i := range accounts {
		a := &accounts[i]
		for _, h := range holdings[a.Kind] {
			switch h.dimension {
			case dimensionAllocation:
				a.Allocation = append(a.Allocation, h.holding)
			case dimensionSector:
				a.Sectors = append(a.Sectors, h.holding)
			default:
				return models.Fixtures{}, fmt.Errorf("%w: %q", ErrUnknownDimension, h.dimension)
			}
		}
		a.Transactions = transactions[a.Kind]
		a.History = history[a.Kind]
		a.Investments = investments[a.Kind]
		a.Performance = performance[a.Kind]
		a.Contributions = contributions[a.Kind]
		a.Projections = projections[a.Kind]
	}

	return models.Fixtures{BaseCurrency: currency, Accounts: accounts, FAQ: faq}, nil
}

func (r *AccountRepository) getAccounts(ctx context.Context) ([]models.Account, string, error) {
	query := `
		SELECT kind, name, currency, balance, change_value, change_percentage, change_positive,
		       allowance_used, allowance_total, COALESCE(benchmark, '')
		FROM account
		ORDER BY position ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	var currency string
	for rows.Next() {
		var (
			a           models.Account
			kind, cur   string
			used, total decimal.NullDecimal
		)
		if err := rows.Scan(&kind, &a.Name, &cur, &a.Balance,
			&a.MonthlyChange.Value, &a.MonthlyChange.Percentage, &a.MonthlyChange.IsPositive,
			&used, &total, &a.Benchmark); err != nil {
			return nil, "", fmt.Errorf("failed to scan account: %w", err)
		}
		a.Kind, err = models.ParseAccountKind(kind)
		if err != nil {
			return nil, "", err
		}
		if currency != "" && cur != currency {
			return nil, "", fmt.Errorf("%w: %s and %s", ErrMixedCurrencies, currency, cur)
		}
		currency = cur
		if used.Valid && total.Valid {
			a.Allowance = &models.Allowance{Used: used.Decimal, Total: total.Decimal}
		}
		accounts = append(accounts, a)
	}
	return accounts, currency, rows.Err()
}

func scanTransaction(rows pgx.Rows) (string, models.Transaction, error) {
	var kind, txType, category string
	var date time.Time
	var t models.Transaction
	if err := rows.Scan(&kind, &t.ID, &date, &t.Description, &t.Amount, &txType, &category); err != nil {
		return "", t, err
	}
	t.Date = models.DateOf(date)
	t.Type = models.TransactionType(txType)
	t.Category = models.TransactionCategory(category)
	if !t.Category.Valid() {
		t.Category = models.CategoryOther
	}
	return kind, t, nil
}

// getFAQ reads help sections in order. Sections without questions are kept.
func (r *AccountRepository) getFAQ(ctx context.Context) ([]models.FAQSection, error) {
	query := `
		SELECT s.position, s.category, i.question, i.answer
		FROM faq_section s
		LEFT JOIN faq_item i ON i.section_position = s.position
		ORDER BY s.position, i.position
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query faq: %w", err)
	}
	defer rows.Close()

	var sections []models.FAQSection
	last := -1
	for rows.Next() {
		var (
			position         int
			category         string
			question, answer *string
		)
		if err := rows.Scan(&position, &category, &question, &answer); err != nil {
			return nil, fmt.Errorf("failed to scan faq: %w", err)
		}
		if position != last {
			sections = append(sections, models.FAQSection{Category: category, Questions: []models.FAQItem{}})
			last = position
		}
		if question != nil && answer != nil {
			s := &sections[len(sections)-1]
			s.Questions = append(s.Questions, models.FAQItem{Question: *question, Answer: *answer})
		}
	}
	return sections, rows.Err()
}

// Replace swaps the stored data set for fixtures in a single transaction
func (r *AccountRepository) Replace(ctx context.Context, fixtures models.Fixtures) error {
	if err := fixtures.Validate(); err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	// child tables reference account(kind) and faq_section(position)
	for _, table := range []string{
		"account_projection", "account_contribution", "account_performance", "account_investment",
		"account_balance_history", "account_transaction", "account_holding", "account",
		"faq_item", "faq_section",
	} {
		batch.Queue(`DELETE FROM ` + table)
	}

	for pos, a := range fixtures.Accounts {
		queueAccount(batch, pos, a, fixtures.BaseCurrency)
	}
	for i, s := range fixtures.FAQ {
		batch.Queue(`INSERT INTO faq_section (position, category) VALUES ($1, $2)`, i, s.Category)
		for j, q := range s.Questions {
			batch.Queue(`
				INSERT INTO faq_item (section_position, position, question, answer)
				VALUES ($1, $2, $3, $4)
			`, i, j, q.Question, q.Answer)
		}
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to store accounts: %w", err)
	}
	return tx.Commit(ctx)
}

func queueAccount(batch *pgx.Batch, pos int, a models.Account, currency string) {
	var used, total decimal.NullDecimal
	if a.Allowance != nil {
		used = decimal.NewNullDecimal(a.Allowance.Used)
		total = decimal.NewNullDecimal(a.Allowance.Total)
	}
	var benchmark *string
	if a.Benchmark != "" {
		benchmark = &a.Benchmark
	}
	kind := string(a.Kind)

	batch.Queue(`
		INSERT INTO account (kind, position, name, currency, balance, change_value, change_percentage,
		                     change_positive, allowance_used, allowance_total, benchmark)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, kind, pos, a.Name, currency, a.Balance,
		a.MonthlyChange.Value, a.MonthlyChange.Percentage, a.MonthlyChange.IsPositive, used, total, benchmark)

	for i, h := range a.Allocation {
		batch.Queue(`
			INSERT INTO account_holding (account_kind, dimension, position, category, percentage)
			VALUES ($1, $2, $3, $4, $5)
		`, kind, dimensionAllocation, i, h.Category, h.Percentage)
	}
	for i, h := range a.Sectors {
		batch.Queue(`
			INSERT INTO account_holding (account_kind, dimension, position, category, percentage)
			VALUES ($1, $2, $3, $4, $5)
		`, kind, dimensionSector, i, h.Category, h.Percentage)
	}
	for _, t := range a.Transactions {
		batch.Queue(`
			INSERT INTO account_transaction (account_kind, id, date, description, amount, type, category)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, kind, t.ID, t.Date.Time, t.Description, t.Amount, string(t.Type), string(t.Category))
	}
	for i, p := range a.History {
		batch.Queue(`
			INSERT INTO account_balance_history (account_kind, position, label, value)
			VALUES ($1, $2, $3, $4)
		`, kind, i, p.Label, p.Value)
	}
	for i, inv := range a.Investments {
		batch.Queue(`
			INSERT INTO account_investment (account_kind, position, name, ticker, allocation, value,
			                                change_value, change_percentage, change_positive, units)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, kind, i, inv.Name, inv.Ticker, inv.Allocation, inv.Value,
			inv.Change.Value, inv.Change.Percentage, inv.Change.IsPositive, inv.Units)
	}
	for i, p := range a.Performance {
		batch.Queue(`
			INSERT INTO account_performance (account_kind, position, label, account_return, benchmark_return)
			VALUES ($1, $2, $3, $4, $5)
		`, kind, i, p.Label, p.Return, p.Benchmark)
	}
	for i, c := range a.Contributions {
		batch.Queue(`
			INSERT INTO account_contribution (account_kind, position, label, personal, employer)
			VALUES ($1, $2, $3, $4, $5)
		`, kind, i, c.Label, c.Personal, c.Employer)
	}
	for i, p := range a.Projections {
		batch.Queue(`
			INSERT INTO account_projection (account_kind, position, label, pessimistic, expected, optimistic)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, kind, i, p.Label, p.Pessimistic, p.Expected, p.Optimistic)
	}
}
