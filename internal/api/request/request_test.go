package request

import (
	"encoding/json"
	"testing"

	"github.com/ecotracker/ecotracker-backend/internal/model"
)

func TestParseTransactionFilter(t *testing.T) {
	t.Run("defaults when no parameters provided", func(t *testing.T) {
		f := ParseTransactionFilter("", "", "")
		if f.Limit != DefaultTransactionLimit {
			t.Errorf("Expected limit %d, got %d", DefaultTransactionLimit, f.Limit)
		}
		if f.Type != "" || f.StartDate != nil || f.EndDate != nil {
			t.Errorf("Expected empty filter, got %+v", f)
		}
	})

	t.Run("valid parameters are applied", func(t *testing.T) {
		f := ParseTransactionFilter("2024-01-01", "2024-01-31", "expense")
		if f.Type != model.TypeExpense {
			t.Errorf("Expected type expense, got %s", f.Type)
		}
		if f.StartDate == nil || f.StartDate.Format(model.DateLayout) != "2024-01-01" {
			t.Errorf("Unexpected start date %v", f.StartDate)
		}
		if f.EndDate == nil || f.EndDate.Format(model.DateLayout) != "2024-01-31" {
			t.Errorf("Unexpected end date %v", f.EndDate)
		}
	})

	t.Run("malformed values are ignored", func(t *testing.T) {
		f := ParseTransactionFilter("01/02/2024", "tomorrow", "transfer")
		if f.Type != "" || f.StartDate != nil || f.EndDate != nil {
			t.Errorf("Expected malformed values to be dropped, got %+v", f)
		}
	})
}

// TestLooseInt tests lenient decoding of month_start_day.
//
// WHY: Settings forms send the day as a number or a string. Bad input must be
// ignored, never turned into a 400.
func TestLooseInt(t *testing.T) {
	tests := []struct {
		body  string
		value int
		valid bool
	}{
		{`{"month_start_day": 15}`, 15, true},
		{`{"month_start_day": "25"}`, 25, true},
		{`{"month_start_day": " 3 "}`, 3, true},
		{`{"month_start_day": "abc"}`, 0, false},
		{`{"month_start_day": 2.5}`, 0, false},
		{`{"month_start_day": null}`, 0, false},
		{`{"month_start_day": [1]}`, 0, false},
		{`{}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req UpdateSettingsRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("Unmarshal returned unexpected error: %v", err)
			}
			if req.MonthStartDay.Valid != tt.valid || req.MonthStartDay.Value != tt.value {
				t.Errorf("got %+v, want {%d %v}", req.MonthStartDay, tt.value, tt.valid)
			}
		})
	}
}
