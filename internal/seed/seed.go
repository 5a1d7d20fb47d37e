// Package seed installs the reference data the application expects (default
// categories, badge definitions and tips) and can generate a demo account.
//
// The data lives in defaults.yaml, embedded at build time. Every step is
// idempotent, so seeding runs on each server start.
package seed

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/repository"
	"github.com/ecotracker/ecotracker-backend/internal/service"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults is the parsed reference data document.
type Defaults struct {
	Categories map[model.TransactionType][]string `yaml:"categories"`
	Badges     []model.Badge                      `yaml:"badges"`
	Tips       []model.Tip                        `yaml:"tips"`
	Demo       DemoConfig                         `yaml:"demo"`
}

// DemoConfig describes the generated demo account.
type DemoConfig struct {
	Username   string            `yaml:"username"`
	Email      string            `yaml:"email"`
	Password   string            `yaml:"password"`
	Days       int               `yaml:"days"`
	Activities []ActivityPattern `yaml:"activities"`
	Recurring  []RecurringEntry  `yaml:"recurring"`
	Spending   []SpendingPattern `yaml:"spending"`
}

// ActivityPattern is one kind of activity the demo user logs, drawn with
// probability proportional to Weight.
type ActivityPattern struct {
	Category     string   `yaml:"category"`
	Type         string   `yaml:"type"`
	Unit         string   `yaml:"unit"`
	Min          float64  `yaml:"min"`
	Max          float64  `yaml:"max"`
	Weight       float64  `yaml:"weight"`
	Descriptions []string `yaml:"descriptions"`
}

// RecurringEntry is a transaction booked on the same day every month.
type RecurringEntry struct {
	Category    string                `yaml:"category"`
	Type        model.TransactionType `yaml:"type"`
	Day         int                   `yaml:"day"`
	Amount      string                `yaml:"amount"`
	Description string                `yaml:"description"`
}

// SpendingPattern is a discretionary expense drawn on random days.
type SpendingPattern struct {
	Category string  `yaml:"category"`
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
	Weight   float64 `yaml:"weight"`
}

// LoadDefaults parses the embedded reference data.
func LoadDefaults() (Defaults, error) {
	var d Defaults
	if err := yaml.Unmarshal(defaultsYAML, &d); err != nil {
		return Defaults{}, fmt.Errorf("failed to parse seed defaults: %w", err)
	}
	return d, nil
}

// Result counts the rows a Bootstrap call inserted.
type Result struct {
	Categories int
	Badges     int
	Tips       int
}

// Seeder writes reference and demo data.
type Seeder struct {
	db           *sql.DB
	userRepo     *repository.UserRepository
	categoryRepo *repository.CategoryRepository
	badgeRepo    *repository.BadgeRepository
	tipRepo      *repository.TipRepository
	txRepo       *repository.TransactionRepository
	activityRepo *repository.ActivityRepository
	badges       *service.BadgeService
	log          *zap.Logger
	now          func() time.Time
	defaults     Defaults
}

// New creates a Seeder for db using the embedded defaults.
func New(db *sql.DB, badges *service.BadgeService, log *zap.Logger) (*Seeder, error) {
	defaults, err := LoadDefaults()
	if err != nil {
		return nil, err
	}

	return &Seeder{
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		categoryRepo: repository.NewCategoryRepository(db),
		badgeRepo:    repository.NewBadgeRepository(db),
		tipRepo:      repository.NewTipRepository(db),
		txRepo:       repository.NewTransactionRepository(db),
		activityRepo: repository.NewActivityRepository(db),
		badges:       badges,
		log:          log,
		now:          time.Now,
		defaults:     defaults,
	}, nil
}

// WithClock returns a copy of the seeder that reads the time from now.
func (s *Seeder) WithClock(now func() time.Time) *Seeder {
	c := *s
	c.now = now
	if s.badges != nil {
		c.badges = s.badges.WithClock(now)
	}
	return &c
}

// Bootstrap installs the default categories, badges and tips that are missing.
func (s *Seeder) Bootstrap(ctx context.Context) (Result, error) {
	var res Result

	for _, typ := range []model.TransactionType{model.TypeIncome, model.TypeExpense} {
		for _, name := range s.defaults.Categories[typ] {
			inserted, err := s.categoryRepo.EnsureGlobalCategory(ctx, model.Category{
				Name:      name,
				Type:      typ,
				IsDefault: true,
			})
			if err != nil {
				return res, err
			}
			if inserted {
				res.Categories++
			}
		}
	}

	for _, b := range s.defaults.Badges {
		inserted, err := s.badgeRepo.EnsureBadge(ctx, b)
		if err != nil {
			return res, err
		}
		if inserted {
			res.Badges++
		}
	}

	for _, t := range s.defaults.Tips {
		inserted, err := s.tipRepo.EnsureTip(ctx, t)
		if err != nil {
			return res, err
		}
		if inserted {
			res.Tips++
		}
	}

	s.log.Info("reference data seeded",
		zap.Int("categories", res.Categories),
		zap.Int("badges", res.Badges),
		zap.Int("tips", res.Tips),
	)
	return res, nil
}
