package period_test

import (
	"strings"
	"testing"

	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/period"
	"github.com/shopspring/decimal"
)

// TestComputeInsights tests ranking and selection of dashboard insights.
//
// WHY: Insights are the only narrative the user sees. Their order and the
// rules for when each one appears must be stable.
func TestComputeInsights(t *testing.T) {
	now := date(t, "2024-03-15")

	t.Run("no transactions gives placeholder", func(t *testing.T) {
		got := period.ComputeInsights(nil, now, 1, "INR")
		if len(got) != 1 || got[0].Title != "Add transactions to see insights" {
			t.Errorf("ComputeInsights(nil) = %+v", got)
		}
	})

	t.Run("doubled category without income", func(t *testing.T) {
		txns := []model.Transaction{
			tx(t, model.TypeExpense, "100", "Food", "2024-02-10"),
			tx(t, model.TypeExpense, "200", "Food", "2024-03-10"),
		}
		got := period.ComputeInsights(txns, now, 1, "INR")

		if len(got) != 2 {
			t.Fatalf("got %d insights, want 2: %+v", len(got), got)
		}
		if got[0].Title != "Food up 100.0% vs last month" {
			t.Errorf("mover title = %q", got[0].Title)
		}
		if !strings.Contains(got[0].Content, "INR 200.00") || !strings.Contains(got[0].Content, "INR 100.00") {
			t.Errorf("mover content = %q", got[0].Content)
		}
		if got[1].Title != "Highest spend: Food" {
			t.Errorf("highest title = %q", got[1].Title)
		}
	})

	t.Run("all three insights in order", func(t *testing.T) {
		txns := []model.Transaction{
			tx(t, model.TypeExpense, "100", "Food", "2024-02-10"),
			tx(t, model.TypeExpense, "50", "Food", "2024-03-10"),
			tx(t, model.TypeExpense, "300", "Rent", "2024-02-01"),
			tx(t, model.TypeExpense, "300", "Rent", "2024-03-01"),
			tx(t, model.TypeIncome, "1000", "Salary", "2024-03-01"),
		}
		got := period.ComputeInsights(txns, now, 1, "USD")

		if len(got) != period.MaxInsights {
			t.Fatalf("got %d insights, want %d", len(got), period.MaxInsights)
		}
		if got[0].Title != "Rent up 0.0% vs last month" {
			t.Errorf("mover title = %q", got[0].Title)
		}
		if got[1].Title != "Highest spend: Rent" {
			t.Errorf("highest title = %q", got[1].Title)
		}
		if got[2].Title != "Savings rate 65.0% this month" {
			t.Errorf("savings title = %q", got[2].Title)
		}
		want := "Income USD 1,000.00 minus expenses USD 350.00 equals USD 650.00 saved."
		if got[2].Content != want {
			t.Errorf("savings content = %q, want %q", got[2].Content, want)
		}
	})

	t.Run("only decreases reports the smallest drop", func(t *testing.T) {
		txns := []model.Transaction{
			tx(t, model.TypeExpense, "100", "Food", "2024-02-10"),
			tx(t, model.TypeExpense, "50", "Food", "2024-03-10"),
			tx(t, model.TypeExpense, "100", "Fuel", "2024-02-10"),
			tx(t, model.TypeExpense, "80", "Fuel", "2024-03-10"),
		}
		got := period.ComputeInsights(txns, now, 1, "INR")
		if got[0].Title != "Fuel down 20.0% vs last month" {
			t.Errorf("mover title = %q", got[0].Title)
		}
		if !strings.Contains(got[0].Content, "INR 80.00") {
			t.Errorf("mover content = %q", got[0].Content)
		}
	})

	t.Run("new category saturates at 100 percent", func(t *testing.T) {
		txns := []model.Transaction{
			tx(t, model.TypeExpense, "100", "Food", "2024-02-10"),
			tx(t, model.TypeExpense, "120", "Food", "2024-03-10"),
			tx(t, model.TypeExpense, "5000", "Travel", "2024-03-11"),
		}
		got := period.ComputeInsights(txns, now, 1, "INR")
		if got[0].Title != "Travel up 100.0% vs last month" {
			t.Errorf("mover title = %q", got[0].Title)
		}
		if got[1].Title != "Highest spend: Travel" {
			t.Errorf("highest title = %q", got[1].Title)
		}
	})

	t.Run("negative savings rate is floored at zero", func(t *testing.T) {
		txns := []model.Transaction{
			tx(t, model.TypeIncome, "100", "Salary", "2024-03-01"),
			tx(t, model.TypeExpense, "400", "Rent", "2024-03-01"),
		}
		got := period.ComputeInsights(txns, now, 1, "INR")
		last := got[len(got)-1]
		if last.Title != "Savings rate 0.0% this month" {
			t.Errorf("savings title = %q", last.Title)
		}
	})

	t.Run("previous-only spend yields placeholder", func(t *testing.T) {
		txns := []model.Transaction{tx(t, model.TypeExpense, "100", "Food", "2024-02-10")}
		got := period.ComputeInsights(txns, now, 1, "INR")
		if len(got) != 1 || got[0].Title != "Add transactions to see insights" {
			t.Errorf("ComputeInsights() = %+v", got)
		}
	})

	t.Run("respects custom start day", func(t *testing.T) {
		// Window for 2024-03-10 with start day 25 is [02-25, 03-24].
		txns := []model.Transaction{
			tx(t, model.TypeExpense, "80", "Food", "2024-02-26"),
			tx(t, model.TypeExpense, "40", "Food", "2024-02-20"),
		}
		got := period.ComputeInsights(txns, date(t, "2024-03-10"), 25, "INR")
		if got[0].Title != "Food up 100.0% vs last month" {
			t.Errorf("mover title = %q", got[0].Title)
		}
	})
}

// TestCategoryDeltas tests the month-over-month comparison rules.
func TestCategoryDeltas(t *testing.T) {
	march := period.ComputeMonthWindow(date(t, "2024-03-15"), 1)
	feb := period.PreviousWindow(march, 1)

	txns := []model.Transaction{
		tx(t, model.TypeExpense, "100", "Food", "2024-02-10"),
		tx(t, model.TypeExpense, "100", "Fuel", "2024-02-10"),
		tx(t, model.TypeExpense, "100", "Gym", "2024-02-10"),
		tx(t, model.TypeExpense, "10", "Books", "2024-02-10"),
		tx(t, model.TypeExpense, "150", "Food", "2024-03-10"),
		tx(t, model.TypeExpense, "50", "Fuel", "2024-03-10"),
		tx(t, model.TypeExpense, "500", "Travel", "2024-03-10"),
		tx(t, model.TypeExpense, "15", "Books", "2024-03-10"),
		tx(t, model.TypeExpense, "0", "Gifts", "2024-03-10"),
	}
	cur := period.CategoryBreakdown(txns, march, model.TypeExpense)
	prev := period.CategoryBreakdown(txns, feb, model.TypeExpense)

	deltas := period.CategoryDeltas(cur, prev)

	// Gym only has previous spend and Gifts is zero in both windows.
	want := []struct {
		category string
		pct      int64
	}{
		{"Travel", 100},
		{"Food", 50},
		{"Books", 50},
		{"Fuel", -50},
	}
	if len(deltas) != len(want) {
		t.Fatalf("got %d deltas, want %d: %+v", len(deltas), len(want), deltas)
	}
	for i, w := range want {
		if deltas[i].Category != w.category {
			t.Errorf("deltas[%d].Category = %s, want %s", i, deltas[i].Category, w.category)
		}
		if !deltas[i].ChangePct.Equal(decimal.NewFromInt(w.pct)) {
			t.Errorf("deltas[%d].ChangePct = %s, want %d", i, deltas[i].ChangePct, w.pct)
		}
	}
}

func TestCategoryDeltas_WorkedExample(t *testing.T) {
	txns := []model.Transaction{
		tx(t, model.TypeExpense, "100", "Food", "2024-03-05"),
		tx(t, model.TypeExpense, "50", "Food", "2024-02-10"),
	}
	march := period.ComputeMonthWindow(date(t, "2024-03-15"), 1)
	deltas := period.CategoryDeltas(
		period.CategoryBreakdown(txns, march, model.TypeExpense),
		period.CategoryBreakdown(txns, period.PreviousWindow(march, 1), model.TypeExpense),
	)
	if len(deltas) != 1 || !deltas[0].ChangePct.Equal(decimal.NewFromInt(100)) {
		t.Errorf("deltas = %+v, want Food 100", deltas)
	}
}
