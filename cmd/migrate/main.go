package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"exchange-ledger/config"
	pgStorage "exchange-ledger/internal/adapter/storage/postgres"
	"exchange-ledger/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|redo|reset|validate")
	configPath := flag.String("config", os.Getenv("EXL_CONFIG_FILE"), "path to config file")
	flag.Parse()

	if *cmd == "validate" {
		if err := pgStorage.ValidateMigrations(); err != nil {
			fmt.Fprintf(os.Stderr, "migration validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("migration validation passed")
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.Component(logger.New(cfg.Log.Level, cfg.Log.Pretty), "migrate")

	ctx := context.Background()
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	log.Info().Str("cmd", *cmd).Strs("args", flag.Args()).Msg("migrate ready")

	if err := pgStorage.Migrate(ctx, pool, *cmd, flag.Args()...); err != nil {
		pool.Close()
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Str("cmd", *cmd).Msg("migration finished")
}
