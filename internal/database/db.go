package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/Alias1177/StockPicker/internal/model"
)

// DB represents a database connection
type DB struct {
	*sql.DB
}

// New opens a PostgreSQL connection and ensures the schema exists
func New(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	// Check connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := createTables(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &DB{db}, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS recommendation_history (
			id BIGSERIAL PRIMARY KEY,
			run_date TIMESTAMP NOT NULL,
			rank INTEGER NOT NULL,
			symbol TEXT NOT NULL,
			company_name TEXT NOT NULL DEFAULT '',
			recommendation TEXT NOT NULL,
			target_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			confidence_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			risk_level TEXT NOT NULL,
			expected_return TEXT NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS recommendation_history_symbol_idx
		ON recommendation_history (symbol, run_date DESC)
	`)
	return err
}

// SaveRecommendations stores every pick of one run in a single transaction
func (db *DB) SaveRecommendations(ctx context.Context, runDate time.Time, recs *model.Recommendations) error {
	if recs == nil || len(recs.TopPicks) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO recommendation_history (
			run_date, rank, symbol, company_name, recommendation,
			target_price, confidence_score, risk_level, expected_return
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range recs.TopPicks {
		if _, err := stmt.ExecContext(ctx,
			runDate, p.Rank, p.Symbol, p.CompanyName, p.Recommendation,
			p.TargetPrice, p.ConfidenceScore, p.RiskLevel, p.ExpectedReturn,
		); err != nil {
			return fmt.Errorf("inserting %s: %w", p.Symbol, err)
		}
	}

	return tx.Commit()
}

// RecentPicks returns the latest stored picks for a symbol, newest first
func (db *DB) RecentPicks(ctx context.Context, symbol string, limit int) ([]model.PastPick, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := db.QueryContext(ctx, `
		SELECT run_date, rank, symbol, company_name, recommendation,
			target_price, confidence_score, risk_level, expected_return
		FROM recommendation_history
		WHERE symbol = $1
		ORDER BY run_date DESC, rank ASC
		LIMIT $2
	`, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.PastPick
	for rows.Next() {
		var e model.PastPick
		if err := rows.Scan(
			&e.RunDate, &e.Rank, &e.Symbol, &e.CompanyName, &e.Recommendation,
			&e.TargetPrice, &e.ConfidenceScore, &e.RiskLevel, &e.ExpectedReturn,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
