package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/testutil"
)

func setupCarbonHandler(t *testing.T) (*CarbonHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewCarbonHandler(
		testutil.NewTestBadgeService(t, db),
		testutil.NewTestCarbonService(t, db),
		testutil.NewTestTipService(t, db),
	), db
}

func TestCarbonHandler_Badges(t *testing.T) {
	handler, db := setupCarbonHandler(t)
	user := testutil.NewUser().WithFootprint(10).Build(t, db)
	testutil.CreateBadge(t, db, "Eco Champion", model.RequirementLowFootprint, 1000)
	testutil.CreateBadge(t, db, "Week Warrior", model.RequirementStreakDays, 7)

	if _, err := testutil.NewTestBadgeService(t, db).EvaluateUser(t.Context(), user); err != nil {
		t.Fatalf("EvaluateUser() error = %v", err)
	}

	req := testutil.AsUser(httptest.NewRequest(http.MethodGet, "/api/badges", nil), user.ID)
	w := httptest.NewRecorder()

	handler.Badges(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp []model.EarnedBadgeResponse
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&resp)

	if len(resp) != 1 || resp[0].Name != "Eco Champion" {
		t.Fatalf("Expected only Eco Champion, got %+v", resp)
	}
	if len(resp[0].EarnedAt) != len("2006-01-02") {
		t.Errorf("earned_at = %q, want a date", resp[0].EarnedAt)
	}
}

// TestCarbonHandler_Leaderboard tests GET /api/leaderboard.
//
// WHY: Lower is better on this board. A regression in the sort order would
// crown the biggest emitter.
func TestCarbonHandler_Leaderboard(t *testing.T) {
	handler, db := setupCarbonHandler(t)
	testutil.NewUser().WithUsername("heavy").WithFootprint(500).Build(t, db)
	testutil.NewUser().WithUsername("light").WithFootprint(5).Build(t, db)
	testutil.NewUser().WithUsername("middle").WithFootprint(50).Build(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	w := httptest.NewRecorder()

	handler.Leaderboard(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp []model.LeaderboardEntry
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&resp)

	if len(resp) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(resp))
	}
	if resp[0].Username != "light" || resp[2].Username != "heavy" {
		t.Errorf("Unexpected order: %+v", resp)
	}
}

func TestCarbonHandler_OffsetCalculator(t *testing.T) {
	handler, db := setupCarbonHandler(t)

	t.Run("converts the footprint", func(t *testing.T) {
		user := testutil.NewUser().WithFootprint(100).Build(t, db)

		req := testutil.AsUser(httptest.NewRequest(http.MethodGet, "/api/offset-calculator", nil), user.ID)
		w := httptest.NewRecorder()

		handler.OffsetCalculator(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp model.OffsetEstimate
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&resp)

		if resp.TreesNeeded != 4.55 || resp.CarbonCredits != 0.1 {
			t.Errorf("Unexpected estimate: %+v", resp)
		}
	})

	t.Run("returns 404 for a vanished user", func(t *testing.T) {
		req := testutil.AsUser(httptest.NewRequest(http.MethodGet, "/api/offset-calculator", nil), testutil.MakeID())
		w := httptest.NewRecorder()

		handler.OffsetCalculator(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestCarbonHandler_Tips(t *testing.T) {
	handler, db := setupCarbonHandler(t)
	testutil.CreateTip(t, db, "Switch to LED", "electricity", 7)
	testutil.CreateTip(t, db, "Unplug devices", "electricity", 9)
	testutil.CreateTip(t, db, "Eat less meat", "food", 8)

	req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/tips", map[string]string{"category": "Electricity"})
	w := httptest.NewRecorder()

	handler.Tips(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp []model.Tip
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&resp)

	if len(resp) != 2 {
		t.Fatalf("Expected 2 electricity tips, got %d", len(resp))
	}
	if resp[0].Title != "Unplug devices" {
		t.Errorf("Expected highest impact first, got %s", resp[0].Title)
	}
}
