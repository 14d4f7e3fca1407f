package notifications

import "github.com/brittbaker321/reddit-trend-tracker/internal/models"

// NotificationInterface defines the contract for run-summary notifications
type NotificationInterface interface {
	SendRunSummary(result *models.RunResult, rows []models.TrendRow) error
}
