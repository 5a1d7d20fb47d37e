package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ecotracker/ecotracker-backend/internal/api/handlers"
	custommiddleware "github.com/ecotracker/ecotracker-backend/internal/api/middleware"
	"github.com/ecotracker/ecotracker-backend/internal/auth"
	"github.com/ecotracker/ecotracker-backend/internal/config"
	"github.com/ecotracker/ecotracker-backend/internal/metrics"
	"github.com/ecotracker/ecotracker-backend/internal/service"
)

// Services bundles the service layer the router exposes.
type Services struct {
	System      *service.SystemService
	Auth        *service.AuthService
	Settings    *service.SettingsService
	Category    *service.CategoryService
	Transaction *service.TransactionService
	Dashboard   *service.DashboardService
	Export      *service.ExportService
	Activity    *service.ActivityService
	Badge       *service.BadgeService
	Carbon      *service.CarbonService
	Tip         *service.TipService
}

// NewRouter creates and configures the HTTP router
func NewRouter(
	svc Services,
	sessions *auth.SessionManager,
	m *metrics.Metrics,
	log *zap.Logger,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)
	r.Use(custommiddleware.Instrument(m))

	r.Method(http.MethodGet, "/metrics", m.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/auth", func(r chi.Router) {
			authHandler := handlers.NewAuthHandler(svc.Auth, sessions, cfg.Session.SecureCookie)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.RequireSession(sessions))

			settingsHandler := handlers.NewSettingsHandler(svc.Settings)
			r.Get("/settings", settingsHandler.GetSettings)
			r.Post("/settings", settingsHandler.UpdateSettings)

			categoryHandler := handlers.NewCategoryHandler(svc.Category)
			r.Get("/categories", categoryHandler.Categories)
			r.Post("/categories", categoryHandler.CreateCategory)

			r.Route("/transactions", func(r chi.Router) {
				transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
				r.Get("/", transactionHandler.Transactions)
				r.Post("/", transactionHandler.CreateTransaction)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", transactionHandler.GetTransaction)
					r.Put("/", transactionHandler.UpdateTransaction)
					r.Delete("/", transactionHandler.DeleteTransaction)
				})
			})

			dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard, svc.Export)
			r.Get("/dashboard-data", dashboardHandler.DashboardData)
			r.Get("/recommendations", dashboardHandler.Recommendations)
			r.Get("/export.csv", dashboardHandler.ExportCSV)

			activityHandler := handlers.NewActivityHandler(svc.Activity)
			r.Get("/activities", activityHandler.Activities)
			r.Post("/activities", activityHandler.LogActivity)

			carbonHandler := handlers.NewCarbonHandler(svc.Badge, svc.Carbon, svc.Tip)
			r.Get("/badges", carbonHandler.Badges)
			r.Get("/leaderboard", carbonHandler.Leaderboard)
			r.Get("/offset-calculator", carbonHandler.OffsetCalculator)
			r.Get("/tips", carbonHandler.Tips)
		})
	})

	return r
}
