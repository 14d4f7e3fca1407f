package notifications

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/brittbaker321/reddit-trend-tracker/internal/config"
	"github.com/brittbaker321/reddit-trend-tracker/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Service sends run summaries via the configured channels. Channels that are
// not configured are skipped silently.
type Service struct {
	config *config.Config
	client *resty.Client
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// TeamsMessage represents a Microsoft Teams message
type TeamsMessage struct {
	Type     string         `json:"@type"`
	Context  string         `json:"@context"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	Sections []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle string      `json:"activityTitle,omitempty"`
	ActivityText  string      `json:"activityText,omitempty"`
	Facts         []TeamsFact `json:"facts,omitempty"`
	Markdown      bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// SendRunSummary sends the summary of a written run via configured channels
func (s *Service) SendRunSummary(result *models.RunResult, rows []models.TrendRow) error {
	var errs []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.sendToTeams(result, rows); err != nil {
			logrus.Errorf("Failed to send Teams notification: %v", err)
			errs = append(errs, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Info("Successfully sent run summary to Teams")
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(result, rows); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errs = append(errs, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent run summary via email")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

func (s *Service) sendToTeams(result *models.RunResult, rows []models.TrendRow) error {
	message := s.buildTeamsMessage(result, rows)

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) buildTeamsMessage(result *models.RunResult, rows []models.TrendRow) *TeamsMessage {
	message := &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   fmt.Sprintf("Reddit Trend Snapshot - %s", result.SnapshotDate),
		Text: fmt.Sprintf("Wrote %d keyword rows for r/%s (%d posts in window, %d comments counted)",
			result.RowsWritten, s.config.Subreddit, result.PostsInWindow, result.CommentsCounted),
	}

	facts := []TeamsFact{
		{Name: "Snapshot Date", Value: result.SnapshotDate},
		{Name: "Rows Written", Value: fmt.Sprintf("%d", result.RowsWritten)},
		{Name: "Posts Scanned", Value: fmt.Sprintf("%d", result.PostsScanned)},
		{Name: "Run Duration", Value: result.Duration.String()},
	}
	message.Sections = append(message.Sections, TeamsSection{
		ActivityTitle: "Summary",
		Facts:         facts,
		Markdown:      true,
	})

	if top := topKeywords(rows, 5); top != "" {
		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: "Top Keywords",
			ActivityText:  top,
			Markdown:      true,
		})
	}

	return message
}

func (s *Service) sendEmail(result *models.RunResult, rows []models.TrendRow) error {
	subject := fmt.Sprintf("Reddit Trend Snapshot - %s (%d rows)", result.SnapshotDate, result.RowsWritten)

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", s.buildEmailText(result, rows))

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *Service) buildEmailText(result *models.RunResult, rows []models.TrendRow) string {
	var text strings.Builder

	text.WriteString(fmt.Sprintf("Reddit Trend Snapshot - %s\n", result.SnapshotDate))
	text.WriteString(fmt.Sprintf("Subreddit: r/%s\n\n", s.config.Subreddit))

	text.WriteString("SUMMARY\n")
	text.WriteString("=======\n")
	text.WriteString(fmt.Sprintf("Rows Written: %d\n", result.RowsWritten))
	text.WriteString(fmt.Sprintf("Posts Scanned: %d\n", result.PostsScanned))
	text.WriteString(fmt.Sprintf("Posts In Window: %d\n", result.PostsInWindow))
	text.WriteString(fmt.Sprintf("Comments Counted: %d\n", result.CommentsCounted))
	text.WriteString(fmt.Sprintf("Run Duration: %s\n", result.Duration))

	if top := topKeywords(rows, 10); top != "" {
		text.WriteString("\nTOP KEYWORDS\n")
		text.WriteString("============\n")
		text.WriteString(top)
		text.WriteString("\n")
	}

	return text.String()
}

// topKeywords formats the n highest-count keywords, skipping zero counts
func topKeywords(rows []models.TrendRow, n int) string {
	sorted := make([]models.TrendRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MentionCount > sorted[j].MentionCount
	})

	var lines []string
	for _, row := range sorted {
		if row.MentionCount == 0 || len(lines) == n {
			break
		}
		lines = append(lines, fmt.Sprintf("%s: %d", row.Keyword, row.MentionCount))
	}
	return strings.Join(lines, "\n")
}
