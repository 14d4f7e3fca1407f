package storage

import (
	"context"

	"github.com/brittbaker321/reddit-trend-tracker/internal/models"
)

// TrendStorage defines the contract for the append-only trend table
type TrendStorage interface {
	// DistinctSnapshotDates returns every date that already has a snapshot.
	// An empty table yields an empty result, not an error.
	DistinctSnapshotDates(ctx context.Context) ([]string, error)
	// AppendRows writes all rows in a single batch: either every row is
	// committed or none are.
	AppendRows(ctx context.Context, rows []models.TrendRow) error
	// RowsForDate returns the snapshot rows for one date, ordered by keyword.
	RowsForDate(ctx context.Context, date string) ([]models.TrendRow, error)
	Close() error
}
