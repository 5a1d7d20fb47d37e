package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ecotracker/ecotracker-backend/internal/api"
	"github.com/ecotracker/ecotracker-backend/internal/auth"
	"github.com/ecotracker/ecotracker-backend/internal/config"
	"github.com/ecotracker/ecotracker-backend/internal/database"
	"github.com/ecotracker/ecotracker-backend/internal/metrics"
	"github.com/ecotracker/ecotracker-backend/internal/repository"
	"github.com/ecotracker/ecotracker-backend/internal/scheduler"
	"github.com/ecotracker/ecotracker-backend/internal/seed"
	"github.com/ecotracker/ecotracker-backend/internal/service"
)

const shutdownTimeout = 30 * time.Second

// app is the wired application: an open, migrated and seeded database plus
// every service built on it.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	db       *sql.DB
	metrics  *metrics.Metrics
	sessions *auth.SessionManager
	services api.Services
	seeder   *seed.Seeder
}

// newApp opens the database, applies migrations, installs reference data and
// builds the service layer.
func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	log.Info("connected to database", zap.String("path", cfg.Database.Path))

	if _, err := database.Migrate(ctx, db, log); err != nil {
		db.Close()
		return nil, err
	}

	sessions, err := newSessionManager(cfg, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	m := metrics.New()

	// Create repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	tipRepo := repository.NewTipRepository(db)

	// Create services
	badgeService := service.NewBadgeService(badgeRepo, activityRepo, userRepo, m)
	services := api.Services{
		System:      service.NewSystemService(db, log),
		Auth:        service.NewAuthService(userRepo, sessions, cfg.Finance.DefaultCurrency),
		Settings:    service.NewSettingsService(userRepo, cfg.Finance.DefaultCurrency),
		Category:    service.NewCategoryService(categoryRepo),
		Transaction: service.NewTransactionService(transactionRepo, categoryRepo, m, cfg.Finance.StrictCategoryTypes),
		Dashboard:   service.NewDashboardService(userRepo, transactionRepo),
		Export:      service.NewExportService(userRepo, transactionRepo, cfg.Finance.DefaultCurrency),
		Activity:    service.NewActivityService(db, activityRepo, userRepo, badgeService, m),
		Badge:       badgeService,
		Carbon:      service.NewCarbonService(userRepo),
		Tip:         service.NewTipService(tipRepo),
	}

	seeder, err := seed.New(db, badgeService, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	if _, err := seeder.Bootstrap(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed reference data: %w", err)
	}

	return &app{
		cfg:      cfg,
		log:      log,
		db:       db,
		metrics:  m,
		sessions: sessions,
		services: services,
		seeder:   seeder,
	}, nil
}

// newSessionManager uses the configured key, or a throwaway one that
// invalidates every session on restart.
func newSessionManager(cfg *config.Config, log *zap.Logger) (*auth.SessionManager, error) {
	key := cfg.Session.Key
	if key == "" {
		generated, err := auth.GenerateKey()
		if err != nil {
			return nil, err
		}
		key = generated
		log.Warn("SESSION_KEY is not set; using a generated key, sessions will not survive a restart")
	}
	return auth.NewSessionManager(key, cfg.Session.TTL)
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.log.Error("failed to close database", zap.Error(err))
	}
}

// run serves HTTP and runs the scheduler until SIGINT or SIGTERM, then shuts
// both down gracefully.
func (a *app) run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      api.NewRouter(a.services, a.sessions, a.metrics, a.log, a.cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("starting server", zap.String("addr", a.cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	if a.cfg.Scheduler.Enabled {
		sched, err := scheduler.New(a.log, a.metrics,
			scheduler.DailyMaintenance(a.services.Activity, a.services.Badge, a.log),
		)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return sched.Run(gCtx)
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		a.log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.log.Info("server exited")
	return nil
}
