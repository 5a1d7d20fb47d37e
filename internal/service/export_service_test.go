package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/ecotracker/ecotracker-backend/internal/api/request"
	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/testutil"
)

// TestExportService_ExportCSV tests the CSV export format.
//
// WHY: Exports are opened in spreadsheets. The header, the oldest-first order,
// fixed two-decimal amounts and single-line records are what users rely on.
func TestExportService_ExportCSV(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestExportService(t, db)
	user := testutil.NewUser().WithCurrency("EUR").Build(t, db)
	food := testutil.CreateCategory(t, db, "Food", model.TypeExpense)

	late := testutil.NewTransaction(user.ID).
		Expense("12.5").
		WithCategory(food).
		WithDate(testutil.Date("2024-03-05")).
		WithDescription("lunch\nwith team").
		Build(t, db)
	early := testutil.NewTransaction(user.ID).
		Income("1000").
		WithDate(testutil.Date("2024-01-31")).
		Build(t, db)

	export := func(t *testing.T, start, end string) [][]string {
		t.Helper()
		var buf bytes.Buffer
		from, to := request.ParseDateRange(start, end)
		if err := svc.ExportCSV(ctx, user.ID, from, to, &buf); err != nil {
			t.Fatalf("ExportCSV() returned unexpected error: %v", err)
		}
		records, err := csv.NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatalf("Export is not valid CSV: %v", err)
		}
		return records
	}

	t.Run("full export", func(t *testing.T) {
		records := export(t, "", "")

		want := [][]string{
			{"id", "date", "type", "amount", "currency", "category", "description"},
			{early.ID, "2024-01-31", "income", "1000.00", "EUR", "", ""},
			{late.ID, "2024-03-05", "expense", "12.50", "EUR", "Food", "lunch with team"},
		}
		if len(records) != len(want) {
			t.Fatalf("Expected %d rows, got %d: %v", len(want), len(records), records)
		}
		for i := range want {
			for j := range want[i] {
				if records[i][j] != want[i][j] {
					t.Errorf("Row %d col %d: expected %q, got %q", i, j, want[i][j], records[i][j])
				}
			}
		}
	})

	t.Run("date range", func(t *testing.T) {
		records := export(t, "2024-02-01", "")
		if len(records) != 2 || records[1][0] != late.ID {
			t.Errorf("Expected only the March transaction, got %v", records)
		}
	})

	t.Run("malformed range is ignored", func(t *testing.T) {
		records := export(t, "not-a-date", "2024/12/31")
		if len(records) != 3 {
			t.Errorf("Expected all transactions, got %d rows", len(records))
		}
	})
}
