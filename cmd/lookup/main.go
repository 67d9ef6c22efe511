package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/woozymasta/nearby/internal/config"
	"github.com/woozymasta/nearby/internal/geo"
	"github.com/woozymasta/nearby/internal/graceful"
	"github.com/woozymasta/nearby/internal/location"
	"github.com/woozymasta/nearby/internal/logger"
	"github.com/woozymasta/nearby/internal/places"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"     env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	EnvFile    string `short:"e" long:"env-file"   env:"ENV_FILE"    description:"Path to .env file with secrets" default:".env"`
	Output     string `short:"o" long:"out"        description:"Output file path. Writes to stdout if empty"`
	Format     string `short:"f" long:"format"     description:"Output format" choice:"json" choice:"yaml" default:"json"`
	Permission string `short:"P" long:"permission" description:"Override location permission policy" choice:"granted" choice:"denied" choice:"prompt"`
}

// collector keeps the points of interest of the single dispatched fetch.
type collector struct {
	fetcher *places.Fetcher
	pois    []places.PointOfInterest
}

func (c *collector) Dispatch(ctx context.Context, at geo.Coordinate) {
	c.pois = c.fetcher.FetchPOIs(ctx, at)
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

	opts.Logger.Setup()

	if err := godotenv.Load(opts.EnvFile); err != nil {
		log.Debug().Str("path", opts.EnvFile).Msg("No .env file found, using environment variables")
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if opts.Permission != "" {
		cfg.Location.Permission = opts.Permission
	}

	client := &http.Client{Timeout: cfg.HTTPTimeout}

	platform, err := location.NewPlatform(cfg.Location, client, cfg.Places.UserAgent, os.Stdin, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create location platform")
	}

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	sink := &collector{fetcher: places.NewFetcher(places.NewClient(client, cfg.Places))}
	res := location.NewResolver(platform, sink, nil, location.OptionsFrom(cfg.Location)).Resolve(ctx)

	fc := places.Collection(sink.pois)

	var outputData []byte
	if opts.Format == "yaml" {
		outputData, err = yaml.Marshal(fc)
	} else {
		outputData, err = json.MarshalIndent(fc, "", "  ")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal points of interest")
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, outputData, 0644); err != nil {
			log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write output file")
		}
	} else {
		fmt.Println(string(outputData))
	}

	log.Info().
		Stringer("center", res.Coordinate).
		Bool("fallback", res.Fallback()).
		Bool("dispatched", res.Dispatched).
		Int("count", len(fc.Features)).
		Str("format", opts.Format).
		Msg("Lookup finished")
}
