// internal/database/database.go
//
// sqlx connection helpers for the Drupal store.
//
// Context
// -------
// Every extraction run opens one read-only pool against the legacy Drupal
// MySQL database.  Both helpers Ping before returning so callers fail fast
// during bootstrap, then issue the two cache-sizing statements the bulk-sync
// queries rely on (Drupal's per-field tables push the server past its default
// table_open_cache when a run touches every side table).
//
// Public entry points:
//
//	Open(ctx, dsn)                            – conservative pool sizes.
//	OpenWithOptions(ctx, dsn, maxOpen, maxIdle) – fine-grained control.
//
// Callers should Close() the returned *sqlx.DB when no longer needed.
//
// Notes
// -----
// • The engine performs no writes; the tuning statements are the only
//   non-SELECT traffic on the pool.
// • Oxford commas, two spaces after periods.
package database

import (
	"context"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Open returns a *sqlx.DB with sane defaults: 15 max open, 5 idle, and a
// 30-minute connection lifetime.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	return OpenWithOptions(ctx, dsn, 15, 5)
}

// OpenWithOptions lets callers tune maxOpen and maxIdle per pool.  maxOpen
// also bounds the cross-club resolver fan-out, so keep the two in step.
func OpenWithOptions(ctx context.Context, dsn string, maxOpen, maxIdle int) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	// Raise the server's table caches so full-run extractions do not thrash
	// the definition cache across Drupal's hundreds of per-field tables.
	for _, stmt := range []string{
		`SET GLOBAL table_definition_cache = 4096`,
		`SET GLOBAL table_open_cache = 4096`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}
