package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/nearby/internal/app"
	"github.com/woozymasta/nearby/internal/config"
	"github.com/woozymasta/nearby/internal/geo"
	"github.com/woozymasta/nearby/internal/graceful"
	"github.com/woozymasta/nearby/internal/location"
	"github.com/woozymasta/nearby/internal/logger"
	"github.com/woozymasta/nearby/internal/places"
	"github.com/woozymasta/nearby/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"     env:"CONFIG_FILE"    description:"Path to configuration file" default:"config.yaml"`
	EnvFile    string `short:"e" long:"env-file"   env:"ENV_FILE"       description:"Path to .env file with secrets" default:".env"`
	Addr       string `short:"a" long:"addr"       env:"LISTEN_ADDRESS" description:"Address to listen on"       default:"0.0.0.0"`
	Permission string `short:"P" long:"permission" env:"LOCATION_PERMISSION" description:"Override location permission policy" choice:"granted" choice:"denied" choice:"prompt"`
	Port       int    `short:"p" long:"port"       env:"LISTEN_PORT"    description:"Port to listen on"          default:"8080"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Setup Logging
	opts.Logger.Setup()

	if err := godotenv.Load(opts.EnvFile); err != nil {
		log.Debug().Str("path", opts.EnvFile).Msg("No .env file found, using environment variables")
	}

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if opts.Permission != "" {
		cfg.Location.Permission = opts.Permission
	}
	if cfg.Places.APIKey == "" {
		log.Warn().Msgf("%s is not set, places requests will be rejected", config.APIKeyEnv)
	}

	client := &http.Client{Timeout: cfg.HTTPTimeout}

	platform, err := location.NewPlatform(cfg.Location, client, cfg.Places.UserAgent, os.Stdin, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create location platform")
	}

	state := app.New(
		places.NewFetcher(places.NewClient(client, cfg.Places)),
		geo.NewRegion(*cfg.Location.Fallback, cfg.Location.RegionDelta),
	)
	state.SetResolver(location.NewResolver(platform, state, state, location.OptionsFrom(cfg.Location)))

	srvCtx, err := server.NewServerContext(cfg, state)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to render web page")
	}

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	go state.Start(ctx)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           server.RequestLogger(srvCtx.Routes()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server shutdown failed")
		}
	}()

	log.Info().
		Str("addr", listenAddr).
		Str("platform", cfg.Location.Platform).
		Str("permission", cfg.Location.Permission).
		Msg("Web server started")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}

	log.Info().Msg("Server stopped")
}
