// cmd/server/server.go
package main

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/codr1/streetball/internal/api"
	"github.com/codr1/streetball/internal/api/apiutil"
	leagueapi "github.com/codr1/streetball/internal/api/leagues"
	"github.com/codr1/streetball/internal/config"
	"github.com/codr1/streetball/internal/db"
	"github.com/codr1/streetball/internal/ratelimit"
)

func newServer(cfg *config.Config, database *db.DB, limiter *ratelimit.Limiter) *http.Server {
	router := http.NewServeMux()

	// Register routes
	registerRoutes(router, database)

	// Setup middleware chain
	handler := api.ChainMiddleware(
		corsFor(cfg).Handler(router),
		api.WithWriteLimit(limiter, cfg.Server.TrustProxy),
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func corsFor(cfg *config.Config) *cors.Cors {
	origins := cfg.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})
}

func registerRoutes(mux *http.ServeMux, database *db.DB) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status, body := http.StatusOK, map[string]string{"status": "ok"}
		if err := database.PingContext(ctx); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Health check database ping failed")
			status, body = http.StatusServiceUnavailable, map[string]string{"status": "unavailable"}
		}
		if err := apiutil.WriteJSON(w, status, body); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write health response")
		}
	})

	leagueapi.RegisterRoutes(mux)
}
