package period

import (
	"time"

	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/shopspring/decimal"
)

// Uncategorized is the bucket for transactions without a resolvable category.
const Uncategorized = "Uncategorized"

// Aggregate sums the absolute amounts of transactions of type typ dated inside w.
func Aggregate(transactions []model.Transaction, w MonthWindow, typ model.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		if t.Type == typ && w.Contains(t.Date) {
			total = total.Add(t.Amount.Abs())
		}
	}
	return total
}

// Balance returns all-time income minus all-time expense.
func Balance(transactions []model.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, t := range transactions {
		switch t.Type {
		case model.TypeIncome:
			balance = balance.Add(t.Amount.Abs())
		case model.TypeExpense:
			balance = balance.Sub(t.Amount.Abs())
		}
	}
	return balance
}

// CategoryTotals maps category names to summed amounts and remembers the order in
// which categories were first seen, so rankings over it are deterministic.
type CategoryTotals struct {
	names  []string
	totals map[string]decimal.Decimal
}

func newCategoryTotals() CategoryTotals {
	return CategoryTotals{totals: make(map[string]decimal.Decimal)}
}

func (c *CategoryTotals) add(name string, amount decimal.Decimal) {
	if _, ok := c.totals[name]; !ok {
		c.names = append(c.names, name)
		c.totals[name] = decimal.Zero
	}
	c.totals[name] = c.totals[name].Add(amount)
}

// Names returns category names in first-seen order.
func (c CategoryTotals) Names() []string {
	return append([]string(nil), c.names...)
}

// Get returns the total for name, or zero when the category is absent.
func (c CategoryTotals) Get(name string) decimal.Decimal {
	if v, ok := c.totals[name]; ok {
		return v
	}
	return decimal.Zero
}

// Has reports whether name has at least one transaction.
func (c CategoryTotals) Has(name string) bool {
	_, ok := c.totals[name]
	return ok
}

// Len returns the number of categories.
func (c CategoryTotals) Len() int {
	return len(c.names)
}

// Highest returns the category with the largest total. Ties go to the category
// seen first. ok is false when there are no categories.
func (c CategoryTotals) Highest() (name string, total decimal.Decimal, ok bool) {
	for _, n := range c.names {
		if !ok || c.totals[n].GreaterThan(total) {
			name, total, ok = n, c.totals[n], true
		}
	}
	return name, total, ok
}

// Rounded returns the totals as floats rounded to two decimals.
func (c CategoryTotals) Rounded() map[string]float64 {
	out := make(map[string]float64, len(c.names))
	for _, n := range c.names {
		out[n] = round2(c.totals[n])
	}
	return out
}

// CategoryBreakdown groups transactions of type typ dated inside w by category name.
func CategoryBreakdown(transactions []model.Transaction, w MonthWindow, typ model.TransactionType) CategoryTotals {
	totals := newCategoryTotals()
	for _, t := range transactions {
		if t.Type != typ || !w.Contains(t.Date) {
			continue
		}
		name := t.CategoryName
		if name == "" {
			name = Uncategorized
		}
		totals.add(name, t.Amount.Abs())
	}
	return totals
}

// KPIs holds full-precision headline figures. Balance is all-time; Income,
// Expense and SavingsRate are scoped to one window.
type KPIs struct {
	Balance     decimal.Decimal
	Income      decimal.Decimal
	Expense     decimal.Decimal
	SavingsRate decimal.Decimal
}

// ComputeKPIs derives balance, window income/expense and the savings rate.
// The savings rate is zero when there is no income in the window.
func ComputeKPIs(transactions []model.Transaction, w MonthWindow) KPIs {
	income := Aggregate(transactions, w, model.TypeIncome)
	expense := Aggregate(transactions, w, model.TypeExpense)

	return KPIs{
		Balance:     Balance(transactions),
		Income:      income,
		Expense:     expense,
		SavingsRate: savingsRate(income, expense),
	}
}

// Response rounds the KPIs for presentation.
func (k KPIs) Response(currency string) model.KPIs {
	return model.KPIs{
		CurrentBalance: round2(k.Balance),
		MonthIncome:    round2(k.Income),
		MonthExpense:   round2(k.Expense),
		SavingsRate:    round2(k.SavingsRate),
		Currency:       currency,
	}
}

func savingsRate(income, expense decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return income.Sub(expense).Div(income).Mul(hundred)
}

// DailyExpenseSeries returns per-day expense totals keyed by ISO date for every
// transaction dated on or after since. Days that only carry income appear with 0.
func DailyExpenseSeries(transactions []model.Transaction, since time.Time) map[string]decimal.Decimal {
	since = DateOf(since)
	series := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if DateOf(t.Date).Before(since) {
			continue
		}
		key := t.Date.Format(model.DateLayout)
		total, ok := series[key]
		if !ok {
			total = decimal.Zero
		}
		if t.Type == model.TypeExpense {
			total = total.Add(t.Amount.Abs())
		}
		series[key] = total
	}
	return series
}
