// Package server assembles the HTTP application: middleware chain, route
// registration and process lifecycle.
package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"opsdash/internal/domain/asset"
	"opsdash/internal/domain/auth"
	"opsdash/internal/domain/backlog"
	"opsdash/internal/domain/employee"
	"opsdash/internal/domain/fuel"
	"opsdash/internal/platform/config"
	"opsdash/internal/platform/db"
	assethandler "opsdash/internal/transport/http/handlers/asset"
	authhandler "opsdash/internal/transport/http/handlers/auth"
	backloghandler "opsdash/internal/transport/http/handlers/backlog"
	employeehandler "opsdash/internal/transport/http/handlers/employee"
	fuelhandler "opsdash/internal/transport/http/handlers/fuel"
	"opsdash/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Router http.Handler
}

// New builds the application around an existing pool, so tests can hand in
// their own database.
func New(cfg config.Config, pool *pgxpool.Pool) *App {
	authStore := auth.NewStore(pool)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authStore, cfg.JWTSecret, cfg.TokenTTL).RegisterRoutes(r)
		employeehandler.NewHandler(employee.NewStore(pool), authStore).RegisterRoutes(r)
		assethandler.NewHandler(asset.NewStore(pool), authStore).RegisterRoutes(r)
		fuelhandler.NewHandler(fuel.NewStore(pool), authStore).RegisterRoutes(r)
		backloghandler.NewHandler(backlog.NewStore(pool), authStore).RegisterRoutes(r)
	})

	return &App{Config: cfg, DB: pool, Router: router}
}

// Run is the blocking entrypoint used by the serve command.
func Run(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			return err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			return err
		}
	}

	app := New(cfg, pool)
	log.Printf("opsdash listening on %s", cfg.Addr)
	return http.ListenAndServe(cfg.Addr, app.Router)
}
