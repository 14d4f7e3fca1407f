package trends

import (
	"testing"
	"time"

	"github.com/brittbaker321/reddit-trend-tracker/internal/models"
	"github.com/stretchr/testify/assert"
)

func commentOn(day time.Time, id string, score int) models.Comment {
	return models.Comment{
		ID:        id,
		Body:      "body of " + id,
		CreatedAt: day.Add(12 * time.Hour),
		Score:     score,
	}
}

func TestSelectTopComments(t *testing.T) {
	target := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run("Top N by score descending", func(t *testing.T) {
		comments := []models.Comment{
			commentOn(target, "c1", 3),
			commentOn(target, "c2", 1),
			commentOn(target, "c3", 4),
			commentOn(target, "c4", 1),
			commentOn(target, "c5", 5),
		}

		selected := SelectTopComments(comments, target, time.UTC, 2)

		assert.Len(t, selected, 2)
		assert.Equal(t, 5, selected[0].Score)
		assert.Equal(t, 4, selected[1].Score)
	})

	t.Run("Ties keep fetch order", func(t *testing.T) {
		comments := []models.Comment{
			commentOn(target, "first", 2),
			commentOn(target, "second", 2),
			commentOn(target, "third", 2),
		}

		selected := SelectTopComments(comments, target, time.UTC, 3)

		assert.Equal(t, []string{"first", "second", "third"},
			[]string{selected[0].ID, selected[1].ID, selected[2].ID})
	})

	t.Run("Out-of-window comments are excluded", func(t *testing.T) {
		comments := []models.Comment{
			commentOn(target, "in", 1),
			commentOn(target.AddDate(0, 0, -1), "before", 100),
			commentOn(target.AddDate(0, 0, 1), "after", 100),
		}

		selected := SelectTopComments(comments, target, time.UTC, 10)

		assert.Len(t, selected, 1)
		assert.Equal(t, "in", selected[0].ID)
	})

	t.Run("Fewer than topN is not an error", func(t *testing.T) {
		comments := []models.Comment{commentOn(target, "only", 1)}

		selected := SelectTopComments(comments, target, time.UTC, 10)

		assert.Len(t, selected, 1)
	})

	t.Run("Empty input", func(t *testing.T) {
		assert.Empty(t, SelectTopComments(nil, target, time.UTC, 5))
	})

	t.Run("Zero topN returns nothing", func(t *testing.T) {
		comments := []models.Comment{commentOn(target, "c1", 1)}

		assert.Empty(t, SelectTopComments(comments, target, time.UTC, 0))
	})
}
