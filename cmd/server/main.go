package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/ecotracker/ecotracker-backend/internal/config"
	"github.com/ecotracker/ecotracker-backend/internal/database"
	"github.com/ecotracker/ecotracker-backend/internal/logging"
	"github.com/ecotracker/ecotracker-backend/internal/version"
)

func main() {
	cmd := &cli.Command{
		Name:    "ecotracker",
		Usage:   "Personal finance and carbon footprint tracker API",
		Version: version.Version,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Migrate, seed reference data and start the HTTP server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Apply pending database migrations",
				Action: migrate,
			},
			{
				Name:   "seed",
				Usage:  "Install default categories, badges and tips",
				Action: seedData,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "demo",
						Usage: "Also create the demo_user account with six months of history",
					},
				},
			},
		},
		DefaultCommand: "serve",
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ecotracker: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger every command needs.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, nil, err
	}
	zap.ReplaceGlobals(log)

	return cfg, log, nil
}

func migrate(ctx context.Context, _ *cli.Command) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	v, err := database.Migrate(ctx, db, log)
	if err != nil {
		return err
	}
	log.Info("database migrated", zap.String("path", cfg.Database.Path), zap.Int64("version", v))
	return nil
}

func seedData(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	if !cmd.Bool("demo") {
		return nil
	}

	res, err := a.seeder.Demo(ctx, cfg.Finance.DefaultCurrency)
	if err != nil {
		return fmt.Errorf("failed to create demo data: %w", err)
	}
	if res.Created {
		fmt.Printf("Demo user %q created with %d activities and %d transactions.\n",
			res.User.Username, res.Activities, res.Transactions)
	} else {
		fmt.Printf("Demo user %q already exists.\n", res.User.Username)
	}
	return nil
}

func serve(ctx context.Context, _ *cli.Command) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	return a.run(ctx)
}
