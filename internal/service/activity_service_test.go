package service_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/ecotracker/ecotracker-backend/internal/api/request"
	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/repository"
	"github.com/ecotracker/ecotracker-backend/internal/testutil"
)

func floatPtr(f float64) *float64 {
	return &f
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestActivityService_LogActivity tests emission, footprint and streak updates.
//
// WHY: Every logged activity moves three pieces of user state at once. The
// streak rules in particular are easy to get wrong around day boundaries.
func TestActivityService_LogActivity(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	car := request.CreateActivityRequest{ActivityType: "car", Category: "transport", Value: floatPtr(10), Unit: "km"}

	t.Run("computes emission and starts streak", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestActivityService(t, db).WithClock(testutil.FixedClock(now))
		user := testutil.CreateUser(t, db)

		result, err := svc.LogActivity(ctx, user.ID, car)
		if err != nil {
			t.Fatalf("LogActivity() returned unexpected error: %v", err)
		}

		if !almostEqual(result.Activity.CarbonEmission, 2.0) {
			t.Errorf("Expected emission 2.0, got %v", result.Activity.CarbonEmission)
		}
		if result.Activity.Date.Format(model.DateLayout) != "2024-06-10" {
			t.Errorf("Expected activity dated 2024-06-10, got %s", result.Activity.Date.Format(model.DateLayout))
		}
		if result.User.StreakDays != 1 {
			t.Errorf("Expected streak 1, got %d", result.User.StreakDays)
		}

		stored, err := repository.NewUserRepository(db).GetUser(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUser() returned unexpected error: %v", err)
		}
		if !almostEqual(stored.TotalCarbonFootprint, 2.0) {
			t.Errorf("Expected stored footprint 2.0, got %v", stored.TotalCarbonFootprint)
		}
		if stored.LastActivityDate == nil || stored.LastActivityDate.Format(model.DateLayout) != "2024-06-10" {
			t.Errorf("Unexpected last activity date %v", stored.LastActivityDate)
		}
		testutil.AssertRowCount(t, db, "activities", 1)
	})

	t.Run("unknown activity emits nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestActivityService(t, db).WithClock(testutil.FixedClock(now))
		user := testutil.CreateUser(t, db)

		result, err := svc.LogActivity(ctx, user.ID, request.CreateActivityRequest{
			ActivityType: "rocket", Category: "transport", Value: floatPtr(100),
		})
		if err != nil {
			t.Fatalf("LogActivity() returned unexpected error: %v", err)
		}
		if result.Activity.CarbonEmission != 0 {
			t.Errorf("Expected zero emission, got %v", result.Activity.CarbonEmission)
		}
	})

	streaks := []struct {
		name         string
		streak       int
		lastActivity string
		want         int
	}{
		{name: "yesterday extends", streak: 3, lastActivity: "2024-06-09", want: 4},
		{name: "same day keeps", streak: 3, lastActivity: "2024-06-10", want: 3},
		{name: "gap restarts", streak: 5, lastActivity: "2024-06-07", want: 1},
		{name: "expired streak restarts from yesterday", streak: 0, lastActivity: "2024-06-09", want: 1},
	}
	for _, tt := range streaks {
		t.Run("streak "+tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			svc := testutil.NewTestActivityService(t, db).WithClock(testutil.FixedClock(now))
			user := testutil.NewUser().WithStreak(tt.streak, testutil.Date(tt.lastActivity)).Build(t, db)

			result, err := svc.LogActivity(ctx, user.ID, car)
			if err != nil {
				t.Fatalf("LogActivity() returned unexpected error: %v", err)
			}
			if result.User.StreakDays != tt.want {
				t.Errorf("Expected streak %d, got %d", tt.want, result.User.StreakDays)
			}
		})
	}
}

// TestActivityService_Badges tests that badges follow from logged activities.
//
// WHY: Badges are awarded exactly once, in the same transaction as the activity
// that earned them.
func TestActivityService_Badges(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	beef := request.CreateActivityRequest{ActivityType: "beef", Category: "food", Value: floatPtr(1), Unit: "kg"}

	t.Run("awards first steps once", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestActivityService(t, db).WithClock(testutil.FixedClock(now))
		badges := testutil.NewTestBadgeService(t, db)
		user := testutil.CreateUser(t, db)
		testutil.CreateBadge(t, db, "First Steps", model.RequirementTotalActivities, 1)

		first, err := svc.LogActivity(ctx, user.ID, beef)
		if err != nil {
			t.Fatalf("LogActivity() returned unexpected error: %v", err)
		}
		if len(first.Awarded) != 1 || first.Awarded[0].Name != "First Steps" {
			t.Errorf("Expected First Steps awarded, got %+v", first.Awarded)
		}

		second, err := svc.LogActivity(ctx, user.ID, beef)
		if err != nil {
			t.Fatalf("LogActivity() returned unexpected error: %v", err)
		}
		if len(second.Awarded) != 0 {
			t.Errorf("Expected no repeat award, got %+v", second.Awarded)
		}

		earned, err := badges.ListEarned(ctx, user.ID)
		if err != nil {
			t.Fatalf("ListEarned() returned unexpected error: %v", err)
		}
		if len(earned) != 1 || earned[0].EarnedAt != "2024-06-10" {
			t.Errorf("Unexpected earned badges %+v", earned)
		}
	})

	t.Run("low footprint respects threshold", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestActivityService(t, db).WithClock(testutil.FixedClock(now))
		testutil.CreateBadge(t, db, "Eco Champion", model.RequirementLowFootprint, 1000)
		green := testutil.CreateUser(t, db)
		heavy := testutil.NewUser().WithFootprint(995).Build(t, db)

		got, err := svc.LogActivity(ctx, green.ID, beef)
		if err != nil {
			t.Fatalf("LogActivity() returned unexpected error: %v", err)
		}
		if len(got.Awarded) != 1 {
			t.Errorf("Expected Eco Champion for 13.3 kg, got %+v", got.Awarded)
		}

		got, err = svc.LogActivity(ctx, heavy.ID, beef)
		if err != nil {
			t.Fatalf("LogActivity() returned unexpected error: %v", err)
		}
		if len(got.Awarded) != 0 {
			t.Errorf("Expected no award above 1000 kg, got %+v", got.Awarded)
		}
	})
}

// TestActivityService_ExpireStreaks tests the nightly streak reset.
//
// WHY: A streak survives only while the user logs something every day; users
// who logged yesterday still have today to continue.
func TestActivityService_ExpireStreaks(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 10, 0, 5, 0, 0, time.UTC)
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestActivityService(t, db).WithClock(testutil.FixedClock(now))
	users := repository.NewUserRepository(db)

	lapsed := testutil.NewUser().WithStreak(5, testutil.Date("2024-06-08")).Build(t, db)
	active := testutil.NewUser().WithStreak(2, testutil.Date("2024-06-09")).Build(t, db)

	n, err := svc.ExpireStreaks(ctx)
	if err != nil {
		t.Fatalf("ExpireStreaks() returned unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 streak reset, got %d", n)
	}

	if u, _ := users.GetUser(ctx, lapsed.ID); u.StreakDays != 0 {
		t.Errorf("Expected lapsed streak 0, got %d", u.StreakDays)
	}
	if u, _ := users.GetUser(ctx, active.ID); u.StreakDays != 2 {
		t.Errorf("Expected active streak 2, got %d", u.StreakDays)
	}
}

// TestBadgeService_EvaluateAll tests the batch re-evaluation used by the scheduler.
//
// WHY: Badges can become due without a new activity, for example after seeding.
func TestBadgeService_EvaluateAll(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestBadgeService(t, db)
	testutil.CreateBadge(t, db, "Week Warrior", model.RequirementStreakDays, 7)

	testutil.NewUser().WithStreak(7, testutil.Date("2024-06-09")).Build(t, db)
	testutil.NewUser().WithStreak(6, testutil.Date("2024-06-09")).Build(t, db)

	n, err := svc.EvaluateAll(ctx)
	if err != nil {
		t.Fatalf("EvaluateAll() returned unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 badge awarded, got %d", n)
	}

	n, err = svc.EvaluateAll(ctx)
	if err != nil {
		t.Fatalf("EvaluateAll() returned unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected no awards on second run, got %d", n)
	}
}
