package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"github.com/brittbaker321/reddit-trend-tracker/internal/models"
	"github.com/brittbaker321/reddit-trend-tracker/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

// SQLite implements TrendStorage backed by a SQLite database
type SQLite struct {
	db *sql.DB
}

// Ensure SQLite implements TrendStorage
var _ TrendStorage = (*SQLite)(nil)

// NewSQLite opens a SQLite database at dsn and runs pending migrations
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection
func (s *SQLite) Close() error {
	return s.db.Close()
}

// DistinctSnapshotDates returns every snapshot date present in the table
func (s *SQLite) DistinctSnapshotDates(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT snapshot_date FROM trend_rows ORDER BY snapshot_date`,
	)
	if err != nil {
		return nil, fmt.Errorf("query snapshot dates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan snapshot date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// AppendRows inserts all rows inside one transaction
func (s *SQLite) AppendRows(ctx context.Context, rows []models.TrendRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO trend_rows (snapshot_time, snapshot_date, keyword, mention_count)
		 VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range rows {
		_, err := stmt.ExecContext(ctx,
			row.SnapshotTime.UTC().Format(timeLayout),
			row.SnapshotDate,
			row.Keyword,
			row.MentionCount,
		)
		if err != nil {
			return fmt.Errorf("insert trend row %q: %w", row.Keyword, err)
		}
	}

	return tx.Commit()
}

// RowsForDate returns the snapshot rows for one date, ordered by keyword
func (s *SQLite) RowsForDate(ctx context.Context, date string) ([]models.TrendRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT snapshot_time, snapshot_date, keyword, mention_count
		 FROM trend_rows WHERE snapshot_date = ? ORDER BY keyword`, date,
	)
	if err != nil {
		return nil, fmt.Errorf("query trend rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []models.TrendRow
	for rows.Next() {
		var r models.TrendRow
		var snapTime string
		if err := rows.Scan(&snapTime, &r.SnapshotDate, &r.Keyword, &r.MentionCount); err != nil {
			return nil, fmt.Errorf("scan trend row: %w", err)
		}
		r.SnapshotTime, _ = time.Parse(timeLayout, snapTime)
		result = append(result, r)
	}
	return result, rows.Err()
}
