package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/angelmondragon/xpertech-quotes/internal/catalog"
	"github.com/angelmondragon/xpertech-quotes/pkg/config"
	"github.com/angelmondragon/xpertech-quotes/pkg/db"
	"github.com/angelmondragon/xpertech-quotes/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "catalog command: up|seed|list")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)
	if !cfg.DB.Enabled() {
		fmt.Fprintln(os.Stderr, "missing", config.EnvDBDSN)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx = logg.WithFields(context.Background(), map[string]any{
		"env": cfg.App.Env,
		"cmd": *cmd,
	})

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	repo := catalog.NewRepository(dbClient.DB())
	logg.Info(ctx, "migrate ready")

	switch *cmd {
	case "up":
		if err := repo.Migrate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "migrate failed: %v\n", err)
			os.Exit(1)
		}

	case "seed":
		if err := repo.Migrate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "migrate failed: %v\n", err)
			os.Exit(1)
		}
		seeded, err := repo.SeedIfEmpty(ctx, catalog.Default())
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
			os.Exit(1)
		}
		if seeded {
			fmt.Println("catalog seeded with default prices")
		} else {
			fmt.Println("catalog already has rows, nothing to seed")
		}

	case "list":
		rows, err := repo.List(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "list failed: %v\n", err)
			os.Exit(1)
		}
		for _, row := range rows {
			fmt.Printf("%-22s %-14s %10s  %s\n", row.Category, row.EntryID, row.Price.StringFixed(2), row.Name)
		}

	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
