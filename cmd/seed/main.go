package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/news-api/internal/config"
	"github.com/news-api/internal/database"
	"github.com/news-api/internal/repository"
	"github.com/news-api/internal/seed"
	"github.com/news-api/pkg/logger"
	"github.com/rs/zerolog"
)

// options holds the command line flags
type options struct {
	dataDir string
	timeout time.Duration
	down    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.dataDir, "data", "", "directory with topics.json, users.json, articles.json and comments.json (defaults to the embedded test data)")
	flag.DurationVar(&opts.timeout, "timeout", time.Minute, "maximum time to spend seeding")
	flag.BoolVar(&opts.down, "down", false, "roll back the last migration instead of seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		bootstrap := logger.New(config.LogConfig{Level: "info", Format: "json"})
		bootstrap.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	if err := run(cfg, opts, log); err != nil {
		log.Error().Err(err).Msg("Seeding failed")
		os.Exit(1)
	}
}

// run opens the pool and always closes it before returning
func run(cfg *config.Config, opts options, log zerolog.Logger) error {
	var data *seed.Data
	if !opts.down {
		var err error
		if data, err = readData(opts.dataDir); err != nil {
			return err
		}
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if opts.down {
		return db.MigrateDown(cfg.Database.MigrationsPath)
	}

	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	if err := seed.Load(ctx, db, repository.New(db), data); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	log.Info().
		Int("topics", len(data.Topics)).
		Int("users", len(data.Users)).
		Int("articles", len(data.Articles)).
		Int("comments", len(data.Comments)).
		Msg("Database seeded")
	return nil
}

// readData returns the embedded test data when dir is empty
func readData(dir string) (*seed.Data, error) {
	if dir == "" {
		return seed.TestData()
	}
	data, err := seed.FromDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed data from %s: %w", dir, err)
	}
	return data, nil
}
