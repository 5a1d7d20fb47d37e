package period

import (
	"fmt"
	"sort"
	"time"

	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/shopspring/decimal"
)

// MaxInsights caps the number of insights returned.
const MaxInsights = 3

// CategoryDelta is the month-over-month change for one expense category.
type CategoryDelta struct {
	Category  string
	Current   decimal.Decimal
	Previous  decimal.Decimal
	ChangePct decimal.Decimal
}

// CategoryDeltas compares every current category against the previous window.
//
// A category with no previous spend counts as a 100% increase; one with neither
// previous nor current spend is skipped. Categories only present in previous are
// ignored. The result is ordered by descending ChangePct, ties kept in
// first-seen order.
func CategoryDeltas(current, previous CategoryTotals) []CategoryDelta {
	var deltas []CategoryDelta
	for _, name := range current.Names() {
		cur, prev := current.Get(name), previous.Get(name)

		var pct decimal.Decimal
		switch {
		case prev.IsPositive():
			pct = cur.Sub(prev).Div(prev).Mul(hundred)
		case cur.IsPositive():
			pct = hundred
		default:
			continue
		}

		deltas = append(deltas, CategoryDelta{
			Category:  name,
			Current:   cur,
			Previous:  prev,
			ChangePct: pct,
		})
	}

	sort.SliceStable(deltas, func(i, j int) bool {
		return deltas[i].ChangePct.GreaterThan(deltas[j].ChangePct)
	})
	return deltas
}

// ComputeInsights produces up to MaxInsights ranked observations for the custom
// month containing now. Candidates are emitted in this order:
//
//  1. the category with the largest month-over-month increase
//  2. the highest spend category this month
//  3. the savings rate, when there was income
//
// When nothing qualifies a single placeholder insight is returned.
func ComputeInsights(transactions []model.Transaction, now time.Time, startDay int, currency string) []model.Insight {
	current := ComputeMonthWindow(now, startDay)
	previous := PreviousWindow(current, startDay)

	curCats := CategoryBreakdown(transactions, current, model.TypeExpense)
	prevCats := CategoryBreakdown(transactions, previous, model.TypeExpense)

	insights := make([]model.Insight, 0, MaxInsights)

	if deltas := CategoryDeltas(curCats, prevCats); len(deltas) > 0 {
		insights = append(insights, moverInsight(deltas[0], currency))
	}

	if name, total, ok := curCats.Highest(); ok {
		insights = append(insights, model.Insight{
			Title:   "Highest spend: " + name,
			Content: fmt.Sprintf("Category %s totals %s this month. Review transactions to find quick wins.", name, FormatMoney(currency, total)),
		})
	}

	income := Aggregate(transactions, current, model.TypeIncome)
	if income.IsPositive() {
		expense := Aggregate(transactions, current, model.TypeExpense)
		rate := savingsRate(income, expense)
		if rate.IsNegative() {
			rate = decimal.Zero
		}
		insights = append(insights, model.Insight{
			Title: fmt.Sprintf("Savings rate %s%% this month", rate.Round(1).StringFixed(1)),
			Content: fmt.Sprintf("Income %s minus expenses %s equals %s saved.",
				FormatMoney(currency, income), FormatMoney(currency, expense), FormatMoney(currency, income.Sub(expense))),
		})
	}

	if len(insights) == 0 {
		return []model.Insight{{
			Title:   "Add transactions to see insights",
			Content: "Once you add income and expenses, we will show trends and tips.",
		}}
	}
	if len(insights) > MaxInsights {
		insights = insights[:MaxInsights]
	}
	return insights
}

func moverInsight(d CategoryDelta, currency string) model.Insight {
	direction := "up"
	advice := "Consider setting a budget or looking for savings."
	if d.ChangePct.IsNegative() {
		direction = "down"
		advice = "Nice work keeping it lower."
	}
	return model.Insight{
		Title: fmt.Sprintf("%s %s %s%% vs last month", d.Category, direction, d.ChangePct.Abs().Round(1).StringFixed(1)),
		Content: fmt.Sprintf("You spent %s on %s this month vs %s last month. %s",
			FormatMoney(currency, d.Current), d.Category, FormatMoney(currency, d.Previous), advice),
	}
}
