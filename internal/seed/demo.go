package seed

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ecotracker/ecotracker-backend/internal/apperrors"
	"github.com/ecotracker/ecotracker-backend/internal/auth"
	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/period"
)

// demoSeed fixes the generator so every demo database looks the same.
const demoSeed = 20240301

// DemoResult summarises a generated demo account.
type DemoResult struct {
	User         model.User
	Created      bool
	Activities   int
	Transactions int
	Badges       []model.Badge
}

// Demo creates the demo account with several months of activities and
// transactions ending today. An existing demo account is left untouched.
// Bootstrap must have run first so the default categories and badges exist.
func (s *Seeder) Demo(ctx context.Context, currency string) (DemoResult, error) {
	cfg := s.defaults.Demo

	existing, err := s.userRepo.GetUserByUsername(ctx, cfg.Username)
	if err == nil {
		s.log.Info("demo user already exists", zap.String("username", existing.Username))
		return DemoResult{User: existing}, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return DemoResult{}, err
	}

	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return DemoResult{}, err
	}

	today := time.Date(s.now().Year(), s.now().Month(), s.now().Day(), 0, 0, 0, 0, time.UTC)
	first := today.AddDate(0, 0, -(cfg.Days - 1))

	user := model.User{
		Username:      cfg.Username,
		Email:         cfg.Email,
		PasswordHash:  hash,
		CreatedAt:     first,
		CurrencyCode:  currency,
		MonthStartDay: period.MinStartDay,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DemoResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	userRepo := s.userRepo.WithTx(tx)
	if err := userRepo.InsertUser(ctx, &user); err != nil {
		return DemoResult{}, err
	}

	categories, err := s.categoryRepo.WithTx(tx).ListForUser(ctx, user.ID)
	if err != nil {
		return DemoResult{}, err
	}
	categoryIDs := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryIDs[c.Name] = c.ID
	}

	gen := &generator{rng: rand.New(rand.NewPCG(demoSeed, uint64(cfg.Days))), cfg: cfg}
	res := DemoResult{Created: true}

	activityRepo := s.activityRepo.WithTx(tx)
	txRepo := s.txRepo.WithTx(tx)

	for date := first; !date.After(today); date = date.AddDate(0, 0, 1) {
		activities := gen.activitiesFor(user.ID, date)
		for i := range activities {
			if err := activityRepo.InsertActivity(ctx, &activities[i]); err != nil {
				return DemoResult{}, err
			}
			user.TotalCarbonFootprint += activities[i].CarbonEmission
		}
		res.Activities += len(activities)

		if len(activities) > 0 {
			switch {
			case user.LastActivityDate != nil && date.Sub(*user.LastActivityDate) == 24*time.Hour:
				user.StreakDays++
			default:
				user.StreakDays = 1
			}
			d := date
			user.LastActivityDate = &d
		}

		for _, t := range gen.transactionsFor(user.ID, date, categoryIDs) {
			if err := txRepo.InsertTransaction(ctx, &t); err != nil {
				return DemoResult{}, err
			}
			res.Transactions++
		}
	}

	user.TotalCarbonFootprint = math.Round(user.TotalCarbonFootprint*100) / 100
	if err := userRepo.UpdateCarbonState(ctx, user); err != nil {
		return DemoResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return DemoResult{}, fmt.Errorf("failed to commit demo data: %w", err)
	}
	res.User = user

	if s.badges != nil {
		res.Badges, err = s.badges.EvaluateUser(ctx, user)
		if err != nil {
			return res, err
		}
	}

	s.log.Info("demo user created",
		zap.String("username", user.Username),
		zap.Int("activities", res.Activities),
		zap.Int("transactions", res.Transactions),
		zap.Float64("footprint_kg", user.TotalCarbonFootprint),
		zap.Int("streak_days", user.StreakDays),
		zap.Int("badges", len(res.Badges)),
	)
	return res, nil
}

// generator draws demo records from the configured patterns.
type generator struct {
	rng *rand.Rand
	cfg DemoConfig
}

// activitiesFor returns the activities logged on date: fewer at weekends, the
// odd quiet day and the odd busy one.
func (g *generator) activitiesFor(userID string, date time.Time) []model.Activity {
	if len(g.cfg.Activities) == 0 {
		return nil
	}

	var n int
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		n = g.between(1, 4)
	} else {
		n = g.between(2, 8)
	}
	switch r := g.rng.Float64(); {
	case r < 0.1:
		n = 0
	case r < 0.15:
		n = g.between(8, 15)
	}

	weights := make([]float64, len(g.cfg.Activities))
	for i, p := range g.cfg.Activities {
		weights[i] = p.Weight
	}

	out := make([]model.Activity, 0, n)
	for range n {
		p := g.cfg.Activities[g.pick(weights)]
		value := math.Round((p.Min+g.rng.Float64()*(p.Max-p.Min))*100) / 100

		a := model.Activity{
			UserID:         userID,
			ActivityType:   p.Type,
			Category:       p.Category,
			Value:          value,
			Unit:           p.Unit,
			CarbonEmission: model.CarbonEmission(p.Category, p.Type, value),
			Date:           date,
			CreatedAt:      date,
		}
		if len(p.Descriptions) > 0 {
			a.Description = p.Descriptions[g.rng.IntN(len(p.Descriptions))]
		}
		out = append(out, a)
	}
	return out
}

// transactionsFor returns the recurring entries due on date plus, on roughly
// two days in three, one discretionary expense.
func (g *generator) transactionsFor(userID string, date time.Time, categoryIDs map[string]string) []model.Transaction {
	var out []model.Transaction

	for _, r := range g.cfg.Recurring {
		if date.Day() != r.Day {
			continue
		}
		amount, err := decimal.NewFromString(r.Amount)
		if err != nil {
			continue
		}
		out = append(out, model.Transaction{
			UserID:      userID,
			Type:        r.Type,
			Amount:      amount,
			CategoryID:  categoryIDs[r.Category],
			Date:        date,
			Description: r.Description,
			CreatedAt:   date,
		})
	}

	if len(g.cfg.Spending) > 0 && g.rng.Float64() < 0.66 {
		weights := make([]float64, len(g.cfg.Spending))
		for i, p := range g.cfg.Spending {
			weights[i] = p.Weight
		}
		p := g.cfg.Spending[g.pick(weights)]
		amount := decimal.NewFromFloat(p.Min + g.rng.Float64()*(p.Max-p.Min)).Round(2)

		out = append(out, model.Transaction{
			UserID:      userID,
			Type:        model.TypeExpense,
			Amount:      amount,
			CategoryID:  categoryIDs[p.Category],
			Date:        date,
			Description: p.Category,
			CreatedAt:   date.Add(time.Hour),
		})
	}

	return out
}

// between returns a uniform integer in [lo, hi].
func (g *generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

// pick returns an index drawn with probability proportional to weights.
func (g *generator) pick(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	r := g.rng.Float64() * total
	for i, w := range weights {
		if r < w {
			return i
		}
		r -= w
	}
	return len(weights) - 1
}
