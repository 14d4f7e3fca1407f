package models

import "time"

// DateLayout is the canonical format for snapshot dates.
const DateLayout = "2006-01-02"

// Post represents a Reddit submission fetched for one aggregation run
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Selftext    string    `json:"selftext"`
	Author      string    `json:"author"`
	Permalink   string    `json:"permalink"`
	CreatedAt   time.Time `json:"created_at"`
	Score       int       `json:"score"`
	NumComments int       `json:"num_comments"`
}

// Comment represents a single comment on a post
type Comment struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	Score     int       `json:"score"`
}

// TrendRow is the persisted unit: one keyword's mention count for one snapshot day.
// Rows are append-only; they are never updated or deleted once written.
type TrendRow struct {
	SnapshotTime time.Time `json:"snapshot_time"`
	SnapshotDate string    `json:"snapshot_date"` // formatted with DateLayout
	Keyword      string    `json:"keyword"`
	MentionCount int       `json:"mention_count"`
}

// RunResult reports what a single aggregation run did
type RunResult struct {
	Skipped         bool          `json:"skipped"`
	SnapshotDate    string        `json:"snapshot_date"`
	RowsWritten     int           `json:"rows_written"`
	PostsScanned    int           `json:"posts_scanned"`
	PostsInWindow   int           `json:"posts_in_window"`
	CommentsCounted int           `json:"comments_counted"`
	Duration        time.Duration `json:"duration"`
}
