package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/anuragmoyde/mentor4all-sub000/internal/auth"
	"github.com/anuragmoyde/mentor4all-sub000/internal/availability"
	"github.com/anuragmoyde/mentor4all-sub000/internal/booking"
	"github.com/anuragmoyde/mentor4all-sub000/internal/config"
	"github.com/anuragmoyde/mentor4all-sub000/internal/dashboard"
	"github.com/anuragmoyde/mentor4all-sub000/internal/http/handlers"
	"github.com/anuragmoyde/mentor4all-sub000/internal/middleware"
	"github.com/anuragmoyde/mentor4all-sub000/internal/reminders"
	"github.com/anuragmoyde/mentor4all-sub000/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, scanner *reminders.Scanner, logger *zap.Logger) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewRouter(cfg, store, scanner, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return &Server{inner: httpServer}
}

// NewRouter builds the full route tree.
func NewRouter(cfg config.Config, store storage.Store, scanner *reminders.Scanner, logger *zap.Logger) http.Handler {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	authn := middleware.RequireAuth(tokens)
	dashboards := dashboard.NewService(store)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.EchoRequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, cfg.RateLimitBurst))

	handlers.NewHealthHandler(time.Now(), store).Register(r)
	handlers.NewAuthHandler(store, tokens, logger).Register(r, authn)
	handlers.NewProfileHandler(store, logger).Register(r, authn)
	handlers.NewMentorHandler(store, logger).Register(r, authn)
	handlers.NewAvailabilityHandler(availability.NewManager(store, logger), store, logger).Register(r, authn)
	handlers.NewBookingHandler(booking.NewReconciler(store, store, logger), dashboards, logger).Register(r, authn)
	handlers.NewDashboardHandler(dashboards, logger).Register(r, authn)
	handlers.NewReminderHandler(scanner, cfg.ReminderCronToken, logger).Register(r)
	return r
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
