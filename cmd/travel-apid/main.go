package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/saikamaik/airline-sub000/internal/server"
)

func init() {
	// Configure zerolog for human-friendly console output
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	pflag.String("listen", ":8080", "listen address")
	pflag.String("db", "travel.db", "SQLite database path")
	pflag.String("jwt-secret", "", "JWT signing secret (required)")
	pflag.Bool("debug", false, "verbose logging and SQL tracing")
	pflag.Bool("seed", false, "load demo data on startup")
	pflag.Parse()

	v := viper.New()
	v.SetEnvPrefix("TRAVEL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		log.Fatal().Err(err).Msg("Failed to bind flags")
	}

	if v.GetBool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := server.Config{
		ListenAddress: v.GetString("listen"),
		DatabasePath:  v.GetString("db"),
		JWTSecret:     v.GetString("jwt-secret"),
		DebugSQL:      v.GetBool("debug"),
		SeedDemoData:  v.GetBool("seed"),
	}
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("A JWT secret is required (--jwt-secret or TRAVEL_JWT_SECRET)")
	}

	log.Info().Msg("Starting travel agency API service")

	srv, err := server.New(cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().
			Str("address", cfg.ListenAddress).
			Str("database", cfg.DatabasePath).
			Bool("seeded", cfg.SeedDemoData).
			Msg("Listening")
		log.Info().Msgf("Health check: http://%s/health", cfg.ListenAddress)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Shutdown did not complete cleanly")
	}
}
