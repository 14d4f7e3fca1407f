package notifications

import (
	"testing"
	"time"

	"github.com/brittbaker321/reddit-trend-tracker/internal/config"
	"github.com/brittbaker321/reddit-trend-tracker/internal/models"
	"github.com/stretchr/testify/assert"
)

func sampleRows() []models.TrendRow {
	return []models.TrendRow{
		{SnapshotDate: "2024-03-14", Keyword: "python", MentionCount: 7},
		{SnapshotDate: "2024-03-14", Keyword: "aws", MentionCount: 12},
		{SnapshotDate: "2024-03-14", Keyword: "kubernetes", MentionCount: 0},
		{SnapshotDate: "2024-03-14", Keyword: "snowflake", MentionCount: 3},
	}
}

func sampleResult() *models.RunResult {
	return &models.RunResult{
		SnapshotDate:    "2024-03-14",
		RowsWritten:     4,
		PostsScanned:    100,
		PostsInWindow:   18,
		CommentsCounted: 121,
		Duration:        90 * time.Second,
	}
}

func TestTopKeywords(t *testing.T) {
	got := topKeywords(sampleRows(), 2)

	assert.Equal(t, "aws: 12\npython: 7", got)
}

func TestTopKeywords_SkipsZeroCounts(t *testing.T) {
	got := topKeywords(sampleRows(), 10)

	assert.Equal(t, "aws: 12\npython: 7\nsnowflake: 3", got)
}

func TestTopKeywords_AllZero(t *testing.T) {
	rows := []models.TrendRow{
		{Keyword: "python", MentionCount: 0},
		{Keyword: "aws", MentionCount: 0},
	}

	assert.Equal(t, "", topKeywords(rows, 5))
}

func TestBuildTeamsMessage(t *testing.T) {
	svc := NewService(&config.Config{Subreddit: "dataengineering"})

	message := svc.buildTeamsMessage(sampleResult(), sampleRows())

	assert.Equal(t, "MessageCard", message.Type)
	assert.Contains(t, message.Title, "2024-03-14")
	assert.Contains(t, message.Text, "r/dataengineering")
	assert.Len(t, message.Sections, 2)
	assert.Contains(t, message.Sections[1].ActivityText, "aws: 12")
}

func TestBuildEmailText(t *testing.T) {
	svc := NewService(&config.Config{Subreddit: "dataengineering"})

	text := svc.buildEmailText(sampleResult(), sampleRows())

	assert.Contains(t, text, "Reddit Trend Snapshot - 2024-03-14")
	assert.Contains(t, text, "Rows Written: 4")
	assert.Contains(t, text, "TOP KEYWORDS")
	assert.Contains(t, text, "aws: 12")
	assert.NotContains(t, text, "kubernetes")
}

func TestSendRunSummary_NoChannelsConfigured(t *testing.T) {
	svc := NewService(&config.Config{Subreddit: "dataengineering"})

	err := svc.SendRunSummary(sampleResult(), sampleRows())

	assert.NoError(t, err)
}
