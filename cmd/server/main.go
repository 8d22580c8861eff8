// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	leagueapi "github.com/codr1/streetball/internal/api/leagues"
	"github.com/codr1/streetball/internal/config"
	"github.com/codr1/streetball/internal/db"
	"github.com/codr1/streetball/internal/ratelimit"
	"github.com/codr1/streetball/internal/scheduler"
	"github.com/codr1/streetball/internal/season"
)

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", "config/app.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("filename", cfg.Database.Filename).Msg("Failed to open database")
	}
	defer database.Close()

	leagueService := season.NewService(database, season.Options{
		MinPlayers:    cfg.League.MinPlayers,
		MaxPlayers:    cfg.League.MaxPlayers,
		Location:      cfg.Location(),
		SeedDemoTeams: cfg.League.SeedDemoTeams,
	})
	if err := leagueService.Bootstrap(log.Logger.WithContext(context.Background())); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap league")
	}
	leagueapi.InitHandlers(leagueService)

	jobs, err := scheduler.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}
	if err := scheduler.RegisterArchiveJob(jobs, leagueService, cfg.Jobs.ArchiveCron); err != nil {
		log.Fatal().Err(err).Msg("Failed to register archive job")
	}
	jobs.Start()

	limiter := ratelimit.New(&ratelimit.Config{MaxPerWindow: cfg.Server.WriteLimitPerMinute, Window: time.Minute})
	defer limiter.Close()

	// Create server instance
	server := newServer(cfg, database, limiter)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Run server
	g.Go(func() error {
		log.Info().Int("port", cfg.Server.Port).Str("league", cfg.League.Name).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := jobs.Stop(); err != nil {
			log.Error().Err(err).Msg("Failed to stop scheduler")
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
