package period_test

import (
	"testing"

	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/period"
	"github.com/shopspring/decimal"
)

func tx(t *testing.T, typ model.TransactionType, amount, category, day string) model.Transaction {
	t.Helper()
	return model.Transaction{
		Type:         typ,
		Amount:       decimal.RequireFromString(amount),
		CategoryName: category,
		Date:         date(t, day),
	}
}

// TestAggregate tests window and type filtering of totals.
func TestAggregate(t *testing.T) {
	march := period.ComputeMonthWindow(date(t, "2024-03-15"), 1)

	t.Run("empty input is zero", func(t *testing.T) {
		if got := period.Aggregate(nil, march, model.TypeExpense); !got.IsZero() {
			t.Errorf("Aggregate(nil) = %s, want 0", got)
		}
	})

	t.Run("filters by type and window, inclusive bounds", func(t *testing.T) {
		txns := []model.Transaction{
			tx(t, model.TypeExpense, "10.50", "Food", "2024-03-01"),
			tx(t, model.TypeExpense, "4.50", "Food", "2024-03-31"),
			tx(t, model.TypeExpense, "100", "Food", "2024-02-29"),
			tx(t, model.TypeExpense, "100", "Food", "2024-04-01"),
			tx(t, model.TypeIncome, "500", "Salary", "2024-03-05"),
		}
		got := period.Aggregate(txns, march, model.TypeExpense)
		if !got.Equal(decimal.NewFromInt(15)) {
			t.Errorf("Aggregate() = %s, want 15", got)
		}
	})

	t.Run("uses absolute amounts", func(t *testing.T) {
		txns := []model.Transaction{tx(t, model.TypeExpense, "-20", "Food", "2024-03-02")}
		if got := period.Aggregate(txns, march, model.TypeExpense); !got.Equal(decimal.NewFromInt(20)) {
			t.Errorf("Aggregate() = %s, want 20", got)
		}
	})
}

// TestCategoryBreakdown tests grouping and first-seen ordering.
//
// WHY: Rankings built on the breakdown must be deterministic, so category
// order cannot depend on map iteration.
func TestCategoryBreakdown(t *testing.T) {
	march := period.ComputeMonthWindow(date(t, "2024-03-15"), 1)
	txns := []model.Transaction{
		tx(t, model.TypeExpense, "30", "Transport", "2024-03-02"),
		tx(t, model.TypeExpense, "50", "Food", "2024-03-03"),
		tx(t, model.TypeExpense, "20", "", "2024-03-04"),
		tx(t, model.TypeExpense, "20", "Food", "2024-03-05"),
		tx(t, model.TypeIncome, "999", "Salary", "2024-03-05"),
	}

	cats := period.CategoryBreakdown(txns, march, model.TypeExpense)

	wantOrder := []string{"Transport", "Food", period.Uncategorized}
	names := cats.Names()
	if len(names) != len(wantOrder) {
		t.Fatalf("Names() = %v, want %v", names, wantOrder)
	}
	for i := range wantOrder {
		if names[i] != wantOrder[i] {
			t.Errorf("Names()[%d] = %s, want %s", i, names[i], wantOrder[i])
		}
	}
	if !cats.Get("Food").Equal(decimal.NewFromInt(70)) {
		t.Errorf("Food = %s, want 70", cats.Get("Food"))
	}
	if cats.Has("Salary") {
		t.Error("income category leaked into expense breakdown")
	}

	name, total, ok := cats.Highest()
	if !ok || name != "Food" || !total.Equal(decimal.NewFromInt(70)) {
		t.Errorf("Highest() = %s %s %v, want Food 70 true", name, total, ok)
	}
}

func TestCategoryTotals_HighestTieKeepsFirst(t *testing.T) {
	march := period.ComputeMonthWindow(date(t, "2024-03-15"), 1)
	txns := []model.Transaction{
		tx(t, model.TypeExpense, "40", "Rent", "2024-03-02"),
		tx(t, model.TypeExpense, "40", "Food", "2024-03-03"),
	}
	name, _, _ := period.CategoryBreakdown(txns, march, model.TypeExpense).Highest()
	if name != "Rent" {
		t.Errorf("Highest() = %s, want Rent", name)
	}
}

// TestComputeKPIs tests balance, window totals and savings rate.
func TestComputeKPIs(t *testing.T) {
	march := period.ComputeMonthWindow(date(t, "2024-03-15"), 1)

	t.Run("savings rate from window income and expense", func(t *testing.T) {
		txns := []model.Transaction{
			tx(t, model.TypeIncome, "1000", "Salary", "2024-03-01"),
			tx(t, model.TypeExpense, "250", "Food", "2024-03-10"),
			tx(t, model.TypeIncome, "300", "Salary", "2024-01-01"),
		}
		k := period.ComputeKPIs(txns, march)

		if !k.Balance.Equal(decimal.NewFromInt(1050)) {
			t.Errorf("Balance = %s, want 1050", k.Balance)
		}
		if !k.Income.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("Income = %s, want 1000", k.Income)
		}
		if !k.SavingsRate.Equal(decimal.NewFromInt(75)) {
			t.Errorf("SavingsRate = %s, want 75", k.SavingsRate)
		}
	})

	t.Run("no income means zero savings rate", func(t *testing.T) {
		txns := []model.Transaction{tx(t, model.TypeExpense, "80", "Food", "2024-03-10")}
		k := period.ComputeKPIs(txns, march)
		if !k.SavingsRate.IsZero() {
			t.Errorf("SavingsRate = %s, want 0", k.SavingsRate)
		}
		if !k.Balance.Equal(decimal.NewFromInt(-80)) {
			t.Errorf("Balance = %s, want -80", k.Balance)
		}
	})

	t.Run("overspending gives negative rate", func(t *testing.T) {
		txns := []model.Transaction{
			tx(t, model.TypeIncome, "100", "Salary", "2024-03-01"),
			tx(t, model.TypeExpense, "150", "Food", "2024-03-02"),
		}
		resp := period.ComputeKPIs(txns, march).Response("INR")
		if resp.SavingsRate != -50 {
			t.Errorf("SavingsRate = %v, want -50", resp.SavingsRate)
		}
		if resp.Currency != "INR" {
			t.Errorf("Currency = %s, want INR", resp.Currency)
		}
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		txns := []model.Transaction{
			tx(t, model.TypeIncome, "3", "Salary", "2024-03-01"),
			tx(t, model.TypeExpense, "1", "Food", "2024-03-02"),
		}
		resp := period.ComputeKPIs(txns, march).Response("USD")
		if resp.SavingsRate != 66.67 {
			t.Errorf("SavingsRate = %v, want 66.67", resp.SavingsRate)
		}
	})
}

func TestDailyExpenseSeries(t *testing.T) {
	txns := []model.Transaction{
		tx(t, model.TypeExpense, "10", "Food", "2024-03-01"),
		tx(t, model.TypeExpense, "5.25", "Food", "2024-03-01"),
		tx(t, model.TypeIncome, "500", "Salary", "2024-03-02"),
		tx(t, model.TypeExpense, "99", "Food", "2024-01-01"),
	}

	series := period.DailyExpenseSeries(txns, date(t, "2024-02-01"))

	if len(series) != 2 {
		t.Fatalf("series has %d days, want 2: %v", len(series), series)
	}
	if !series["2024-03-01"].Equal(decimal.RequireFromString("15.25")) {
		t.Errorf("2024-03-01 = %s, want 15.25", series["2024-03-01"])
	}
	if v, ok := series["2024-03-02"]; !ok || !v.IsZero() {
		t.Errorf("income-only day = %s (present %v), want 0", v, ok)
	}
}

func TestBuildDashboard(t *testing.T) {
	txns := []model.Transaction{
		tx(t, model.TypeIncome, "2000", "Salary", "2024-03-01"),
		tx(t, model.TypeExpense, "120.456", "Food", "2024-03-05"),
		tx(t, model.TypeExpense, "60", "Food", "2024-02-05"),
	}

	resp := period.BuildDashboard(txns, date(t, "2024-03-15"), 1).Response("INR")

	if resp.Period.Start != "2024-03-01" || resp.Period.End != "2024-03-31" {
		t.Errorf("Period = %+v", resp.Period)
	}
	if resp.CategoryData["Food"] != 120.46 {
		t.Errorf("CategoryData[Food] = %v, want 120.46", resp.CategoryData["Food"])
	}
	if resp.DailyData["2024-02-05"] != 60 {
		t.Errorf("DailyData[2024-02-05] = %v, want 60", resp.DailyData["2024-02-05"])
	}
	if resp.KPIs.CurrentBalance != 1819.54 {
		t.Errorf("CurrentBalance = %v, want 1819.54", resp.KPIs.CurrentBalance)
	}
}
