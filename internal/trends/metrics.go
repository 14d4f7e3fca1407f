package trends

import (
	"encoding/json"
	"time"

	"github.com/brittbaker321/reddit-trend-tracker/internal/models"
)

// Metrics holds aggregation metrics for the /metrics endpoint
type Metrics struct {
	LastRun          time.Time `json:"last_run"`
	LastRunDuration  string    `json:"last_run_duration"`
	LastSnapshotDate string    `json:"last_snapshot_date"`
	LastRowsWritten  int       `json:"last_rows_written"`
	RunsCompleted    int       `json:"runs_completed"`
	RunsSkipped      int       `json:"runs_skipped"`
	ErrorCount       int       `json:"error_count"`
}

func (s *Service) recordResult(result *models.RunResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.LastRun = time.Now()
	s.metrics.LastRunDuration = result.Duration.String()
	s.metrics.LastSnapshotDate = result.SnapshotDate
	if result.Skipped {
		s.metrics.RunsSkipped++
	} else {
		s.metrics.RunsCompleted++
		s.metrics.LastRowsWritten = result.RowsWritten
	}
}

func (s *Service) recordError() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.LastRun = time.Now()
	s.metrics.ErrorCount++
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
