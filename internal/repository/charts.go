package repository

import (
	"context"

	"github.com/hadiajavedd/SaySoPrototype/internal/database"
)

// TimelineDataPoint is one day's submission count.
type TimelineDataPoint struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// GetSubmissionTimeline returns responses-per-day for a questionnaire, oldest
// day first, for the owner's chart.
func GetSubmissionTimeline(ctx context.Context, questionnaireID uint) ([]TimelineDataPoint, error) {
	var points []TimelineDataPoint
	err := database.DB.WithContext(ctx).Raw(`
		SELECT date(submitted_at) AS day, COUNT(*) AS count
		FROM responses
		WHERE questionnaire_id = ?
		GROUP BY date(submitted_at)
		ORDER BY day ASC
	`, questionnaireID).Scan(&points).Error
	return points, err
}
