package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// OpenDB initializes and returns the Read/Write connection pool for the given DSN.
// DATE/DATETIME columns are always parsed into time.Time in UTC.
func OpenDB(dsn string) (*sqlx.DB, error) {
	// 1. Normalize the Data Source Name (DSN)
	cfg, err := NormalizeDSN(dsn)
	if err != nil {
		return nil, err
	}

	// 2. Open a new connection pool.
	db, err := sqlx.Open("mysql", cfg)
	if err != nil {
		return nil, err
	}

	// 3. Configure the connection pool settings.
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 4. Ping the database to verify the connection.
	if err := db.Ping(); err != nil {
		log.Printf("Error connecting to database: %v", err)
		db.Close()
		return nil, err
	}

	log.Println("Database connection pool established successfully")
	return db, nil
}

// NormalizeDSN forces the driver options the store relies on.
func NormalizeDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid DSN: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}

// WithTx runs fn inside a transaction. It commits when fn returns nil and rolls back otherwise,
// so the writes of one request are applied all together or not at all.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() // Safety net

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
