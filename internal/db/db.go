package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/rogerio-castellano/product-values/internal/config"
)

// Connect opens the configured database, sizes its pool and verifies it is
// reachable. The driver name doubles as the database/sql driver registration.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, Dialect, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, 0, err
	}

	dsn, err := normalizeDSN(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, 0, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, 0, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Debug().
		Str("driver", cfg.Driver).
		Str("dialect", dialect.String()).
		Int("max_open_conns", cfg.MaxOpenConns).
		Msg("Database connection established")

	return db, dialect, nil
}

func normalizeDSN(driver, dsn string) (string, error) {
	switch driver {
	case config.DriverMySQL:
		mc, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
		// Updates that rewrite identical values must still count as a match,
		// otherwise RowsAffected reports a missing row.
		mc.ClientFoundRows = true
		mc.ParseTime = true
		return mc.FormatDSN(), nil
	case config.DriverSQLite:
		if strings.Contains(dsn, "?") {
			return dsn, nil
		}
		return dsn + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", nil
	default:
		return dsn, nil
	}
}
