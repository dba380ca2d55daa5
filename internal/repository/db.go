package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/doc-extractor/internal/common"
)

// DB wraps database/sql with the driver it was opened on, so queries written
// with ? placeholders can be rebound for postgres.
type DB struct {
	*sql.DB
	driver string
}

// Open connects to the durable store. A postgres:// DSN goes through pgx;
// anything else is treated as a sqlite file path.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	driver := "sqlite"
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		driver = "pgx"
	}
	logger.Info("connecting to database", "driver", driver)

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if cfg.PingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.PingTimeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	wrapped := &DB{DB: db, driver: driver}
	if err := ensureSchema(ctx, wrapped); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}

	logger.Info("successfully connected to database")
	return wrapped, nil
}

// Rebind rewrites ? placeholders to $1..$N for the pgx driver.
func (d *DB) Rebind(query string) string {
	if d.driver != "pgx" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func ensureSchema(ctx context.Context, db *DB) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS documents (
			id                    TEXT PRIMARY KEY,
			filename              TEXT NOT NULL,
			storage_path          TEXT NOT NULL,
			file_type             TEXT NOT NULL,
			size_bytes            BIGINT NOT NULL DEFAULT 0,
			processing_status     TEXT NOT NULL,
			extracted_text        TEXT NOT NULL DEFAULT '',
			extracted_tables      TEXT NOT NULL DEFAULT '[]',
			page_count            INTEGER NOT NULL DEFAULT 0,
			extraction_confidence INTEGER NOT NULL DEFAULT 0,
			processed_pages       TEXT NOT NULL DEFAULT '[]',
			extraction_date       TIMESTAMP,
			error_message         TEXT,
			uploaded_at           TIMESTAMP NOT NULL
		)`
	_, err := db.ExecContext(ctx, ddl)
	return err
}
