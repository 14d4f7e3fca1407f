package trends

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/brittbaker321/reddit-trend-tracker/internal/config"
	"github.com/brittbaker321/reddit-trend-tracker/internal/models"
	"github.com/sirupsen/logrus"
)

// Run failure taxonomy. Every error returned by Service.Run wraps exactly one
// of these; all are terminal for the run. Recovery is the next scheduled
// trigger, protected by the idempotence check.
var (
	// ErrConfig means the keyword list or configuration was missing or
	// invalid; the run aborted before any fetch.
	ErrConfig = errors.New("configuration error")
	// ErrFetch means the data source was unreachable or rejected the
	// request; the run aborted before any write.
	ErrFetch = errors.New("fetch error")
	// ErrStorageRead means the distinct-dates query failed. The run aborts
	// rather than assume "no prior snapshot", which could duplicate rows.
	ErrStorageRead = errors.New("storage read error")
	// ErrStorageWrite means the batch append failed; no partial row set is
	// left committed.
	ErrStorageWrite = errors.New("storage write error")
)

// PostSource fetches posts and their comments for a subreddit
type PostSource interface {
	FetchPosts(ctx context.Context, subreddit string, limit int) ([]models.Post, error)
	FetchComments(ctx context.Context, postID string, limit int) ([]models.Comment, error)
}

// KeywordStore loads the configured keyword list
type KeywordStore interface {
	Load(ctx context.Context) ([]string, error)
}

// TrendStore persists snapshot rows
type TrendStore interface {
	DistinctSnapshotDates(ctx context.Context) ([]string, error)
	AppendRows(ctx context.Context, rows []models.TrendRow) error
}

// Notifier sends a summary after a written run
type Notifier interface {
	SendRunSummary(result *models.RunResult, rows []models.TrendRow) error
}

// Service drives the daily snapshot aggregation
type Service struct {
	config   *config.Config
	source   PostSource
	keywords KeywordStore
	store    TrendStore
	notifier Notifier // optional
	metrics  *Metrics
	mu       sync.RWMutex
}

// NewService creates a new aggregation service. notifier may be nil.
func NewService(cfg *config.Config, source PostSource, keywords KeywordStore, store TrendStore, notifier Notifier) *Service {
	return &Service{
		config:   cfg,
		source:   source,
		keywords: keywords,
		store:    store,
		notifier: notifier,
		metrics:  &Metrics{},
	}
}

// Run performs one aggregation for the day before now. It is idempotent: if
// the target date already has a snapshot, it returns a skipped result without
// fetching or writing. On success all rows for the day are appended in a
// single batch; on any error nothing has been written.
func (s *Service) Run(ctx context.Context, now time.Time) (*models.RunResult, error) {
	start := time.Now()
	loc := s.config.Location
	target := TargetDate(now, loc)
	dateKey := target.Format(models.DateLayout)

	logrus.Infof("Starting snapshot run for %s (r/%s)", dateKey, s.config.Subreddit)

	existing, err := s.store.DistinctSnapshotDates(ctx)
	if err != nil {
		s.recordError()
		return nil, fmt.Errorf("%w: query snapshot dates: %v", ErrStorageRead, err)
	}
	for _, d := range existing {
		if d == dateKey {
			logrus.Infof("Snapshot for %s already exists, skipping run", dateKey)
			result := &models.RunResult{
				Skipped:      true,
				SnapshotDate: dateKey,
				Duration:     time.Since(start),
			}
			s.recordResult(result)
			return result, nil
		}
	}

	rawKeywords, err := s.keywords.Load(ctx)
	if err != nil {
		s.recordError()
		return nil, fmt.Errorf("%w: load keywords: %v", ErrConfig, err)
	}
	keywords := NormalizeKeywords(rawKeywords)
	if len(keywords) == 0 {
		s.recordError()
		return nil, fmt.Errorf("%w: keyword list is empty", ErrConfig)
	}
	logrus.Infof("Loaded %d keywords", len(keywords))

	posts, err := s.source.FetchPosts(ctx, s.config.Subreddit, s.config.PostLimit)
	if err != nil {
		s.recordError()
		return nil, fmt.Errorf("%w: fetch posts: %v", ErrFetch, err)
	}
	logrus.Infof("Fetched %d posts from r/%s", len(posts), s.config.Subreddit)

	totals := make(map[string]int, len(keywords))
	for _, kw := range keywords {
		totals[kw] = 0
	}

	postsInWindow := 0
	commentsCounted := 0

	for _, post := range posts {
		if InWindow(post.CreatedAt, target, loc) {
			postsInWindow++
			fold(totals, CountMentions(post.Title+"\n"+post.Selftext, keywords))
		}

		// Comments are fetched for every post: a post from an earlier day
		// can still receive comments during the target day.
		comments, err := s.source.FetchComments(ctx, post.ID, s.config.InitialCommentFetch)
		if err != nil {
			s.recordError()
			return nil, fmt.Errorf("%w: fetch comments for post %s: %v", ErrFetch, post.ID, err)
		}

		selected := SelectTopComments(comments, target, loc, s.config.TopCommentsLimit)
		commentsCounted += len(selected)
		for _, c := range selected {
			fold(totals, CountMentions(c.Body, keywords))
		}
	}

	// One row per configured keyword, zero counts included, so the keyword
	// universe stays stable across days for downstream trend queries.
	snapshotTime := now.UTC()
	rows := make([]models.TrendRow, 0, len(keywords))
	for _, kw := range keywords {
		rows = append(rows, models.TrendRow{
			SnapshotTime: snapshotTime,
			SnapshotDate: dateKey,
			Keyword:      kw,
			MentionCount: totals[kw],
		})
	}

	if err := s.store.AppendRows(ctx, rows); err != nil {
		s.recordError()
		return nil, fmt.Errorf("%w: append %d rows for %s: %v", ErrStorageWrite, len(rows), dateKey, err)
	}

	result := &models.RunResult{
		SnapshotDate:    dateKey,
		RowsWritten:     len(rows),
		PostsScanned:    len(posts),
		PostsInWindow:   postsInWindow,
		CommentsCounted: commentsCounted,
		Duration:        time.Since(start),
	}
	s.recordResult(result)

	logrus.Infof("Snapshot run for %s completed in %v: %d rows written (%d posts in window, %d comments counted)",
		dateKey, result.Duration, result.RowsWritten, result.PostsInWindow, result.CommentsCounted)

	if s.notifier != nil {
		if err := s.notifier.SendRunSummary(result, rows); err != nil {
			// The snapshot is already committed; a notification failure
			// does not fail the run.
			logrus.Errorf("Failed to send run summary: %v", err)
		}
	}

	return result, nil
}

func fold(totals map[string]int, counts map[string]int) {
	for kw, n := range counts {
		totals[kw] += n
	}
}
