package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/moneyman/moneyman/internal/adapter/http/handler"
	"github.com/moneyman/moneyman/internal/adapter/http/middleware"
	"github.com/moneyman/moneyman/internal/adapter/realtime"
	"github.com/moneyman/moneyman/internal/infrastructure/metrics"
	"github.com/moneyman/moneyman/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler        *handler.AuthHandler
	AccountHandler     *handler.AccountHandler
	CategoryHandler    *handler.CategoryHandler
	TransactionHandler *handler.TransactionHandler
	TransferHandler    *handler.TransferHandler
	InvestHandler      *handler.InvestHandler
	AccessHandler      *handler.AccessHandler
	ShareHandler       *handler.ShareHandler
	UserHandler        *handler.UserHandler
	HealthHandler      *handler.HealthHandler

	Hub              *realtime.Hub
	SessionResolver  middleware.SessionResolver
	SessionCookie    string
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	Logger           zerolog.Logger
}

// NewRouter creates the HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	session := middleware.NewSessionMiddleware(cfg.SessionResolver, cfg.SessionCookie)

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Realtime push
	r.Group(func(r chi.Router) {
		r.Use(session.Wrap)
		r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
			s, ok := middleware.SessionFromContext(req.Context())
			if !ok {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			cfg.Hub.ServeWS(w, req, s)
		})
	})

	// API
	r.Route("/api", func(r chi.Router) {
		r.Use(session.Wrap)

		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore).Wrap)
		}

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", cfg.AuthHandler.Signup)
			r.Post("/login", cfg.AuthHandler.Login)
			r.Post("/logout", cfg.AuthHandler.Logout)
			r.Get("/me", cfg.AuthHandler.Me)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", cfg.AccountHandler.List)
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Put("/{id}", cfg.AccountHandler.Update)
			r.Delete("/{id}", cfg.AccountHandler.Delete)
			r.Get("/{id}/transactions", cfg.TransactionHandler.ListByAccount)
			r.Get("/{id}/transfers", cfg.TransferHandler.ListByAccount)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", cfg.CategoryHandler.List)
			r.Post("/", cfg.CategoryHandler.Create)
			r.Get("/type/{kind}", cfg.CategoryHandler.ListByKind)
			r.Put("/{id}", cfg.CategoryHandler.Update)
			r.Delete("/{id}", cfg.CategoryHandler.Delete)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/expense", cfg.TransactionHandler.PostExpense)
			r.Post("/income", cfg.TransactionHandler.PostIncome)
			r.Post("/pay-bill", cfg.TransactionHandler.PayBill)
			r.Get("/recent", cfg.TransactionHandler.Recent)
			r.Get("/summary/monthly", cfg.TransactionHandler.MonthlySummary)
			r.Put("/{id}", cfg.TransactionHandler.Update)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
		})

		r.Route("/transfer", func(r chi.Router) {
			r.Post("/", cfg.TransferHandler.Create)
			r.Get("/{id}", cfg.TransferHandler.Get)
		})

		r.Route("/invest", func(r chi.Router) {
			r.Get("/types", cfg.InvestHandler.Types)
			r.Get("/", cfg.InvestHandler.List)
			r.Post("/", cfg.InvestHandler.Create)
		})

		r.Route("/access", func(r chi.Router) {
			r.Post("/request", cfg.AccessHandler.Request)
			r.Post("/approve", cfg.AccessHandler.Approve)
			r.Post("/verify", cfg.AccessHandler.Verify)
		})

		r.Route("/share", func(r chi.Router) {
			r.Post("/generate", cfg.ShareHandler.Generate)
			r.Get("/{code}", cfg.ShareHandler.Resolve)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/profile", cfg.UserHandler.Profile)
			r.Put("/profile", cfg.UserHandler.UpdateProfile)
			r.Put("/password", cfg.UserHandler.ChangePassword)
			r.Get("/stats", cfg.UserHandler.Stats)
			r.Get("/notifications", cfg.UserHandler.Notifications)
			r.Delete("/notifications", cfg.UserHandler.ClearNotifications)
			r.Get("/export", cfg.UserHandler.Export)
			r.Post("/import", cfg.UserHandler.Import)
			r.Post("/clear-data", cfg.UserHandler.ClearData)
		})
	})

	return r
}
