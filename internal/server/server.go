package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/netdash/apiserver/config"
	"github.com/netdash/apiserver/internal/db"
	"github.com/netdash/apiserver/internal/handlers"
	"github.com/netdash/apiserver/internal/services"
	"github.com/netdash/apiserver/internal/store"
	"github.com/sirupsen/logrus"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	log        *logrus.Logger
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	deviceRepo := store.NewDeviceRepository(dbConn)
	statsRepo := store.NewStatsRepository(dbConn)

	authService := services.NewAuthService(userRepo, statsRepo)
	deviceService := services.NewDeviceService(deviceRepo)
	dashboardService := services.NewDashboardService(statsRepo, deviceRepo)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "Authorization", "X-Requested-With"},
		}),
	)
	router.NotFound(handlers.NotFound)
	router.MethodNotAllowed(handlers.MethodNotAllowed)

	router.Get("/healthz", handlers.Healthz)
	router.Route("/api", func(r chi.Router) {
		handlers.AuthRouter(r, authService, log)
		r.Route("/mikrotiks", func(r chi.Router) {
			handlers.DeviceRouter(r, deviceService, log)
		})
		r.Route("/dashboard-stats", func(r chi.Router) {
			handlers.DashboardRouter(r, dashboardService, log)
		})
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		log:        log,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.log.WithField("addr", s.httpServer.Addr).Info("starting server")
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
