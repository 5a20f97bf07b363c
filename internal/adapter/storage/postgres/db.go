package postgres

import (
	"context"
	"fmt"

	"exchange-ledger/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const applicationName = "exchange-ledger"

// NewPool opens the pgx pool. Sessions run in UTC so created_at comparisons
// against the archive cutoff and report bounds agree with the service clock.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName
	poolCfg.ConnConfig.RuntimeParams["timezone"] = "UTC"

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("dbname", cfg.DBName).
		Int32("max_conns", cfg.MaxConns).
		Msg("PostgreSQL connection pool established")

	return pool, nil
}

// MaybeAutoMigrate applies pending migrations when database.auto_migrate is set.
func MaybeAutoMigrate(ctx context.Context, cfg config.DatabaseConfig, pool *pgxpool.Pool, log zerolog.Logger) error {
	if !cfg.AutoMigrate {
		return nil
	}
	log.Info().Msg("running goose migrations (auto_migrate)")
	if err := Migrate(ctx, pool, "up"); err != nil {
		return err
	}
	log.Info().Msg("goose migrations completed")
	return nil
}
