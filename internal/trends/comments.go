package trends

import (
	"sort"
	"time"

	"github.com/brittbaker321/reddit-trend-tracker/internal/models"
)

// SelectTopComments filters comments to the target day and returns at most
// topN of them ordered by score descending. The sort is stable, so equal
// scores keep their fetch order and the selection is deterministic. Fewer
// than topN qualifying comments is not an error; all of them are returned.
func SelectTopComments(comments []models.Comment, target time.Time, loc *time.Location, topN int) []models.Comment {
	if topN <= 0 {
		return nil
	}

	var inDay []models.Comment
	for _, c := range comments {
		if InWindow(c.CreatedAt, target, loc) {
			inDay = append(inDay, c)
		}
	}

	sort.SliceStable(inDay, func(i, j int) bool {
		return inDay[i].Score > inDay[j].Score
	})

	if len(inDay) > topN {
		inDay = inDay[:topN]
	}
	return inDay
}
