package handlers

import (
	"net/http"

	"github.com/hadiajavedd/SaySoPrototype/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"
)

type ChartHandler struct {
	log *zap.Logger
}

func NewChartHandler(log *zap.Logger) *ChartHandler {
	return &ChartHandler{log: log}
}

// SubmissionChart renders a line chart of submissions per day for one of the
// session user's questionnaires.
func (h *ChartHandler) SubmissionChart(c *gin.Context) {
	user, exists := currentUser(c)
	if !exists {
		c.Redirect(http.StatusFound, "/")
		return
	}
	id, valid := parseID(c)
	if !valid {
		c.String(http.StatusNotFound, "Questionnaire not found")
		return
	}

	q, err := repository.GetOwnedQuestionnaire(c.Request.Context(), id, user.ID)
	if err != nil {
		c.String(http.StatusNotFound, "Questionnaire not found")
		return
	}

	points, err := repository.GetSubmissionTimeline(c.Request.Context(), q.ID)
	if err != nil {
		h.log.Error("Failed to load submission timeline", zap.Error(err), zap.Uint("questionnaireID", q.ID))
		c.String(http.StatusInternalServerError, "Failed to load chart data")
		return
	}

	days := make([]string, 0, len(points))
	values := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		days = append(days, p.Day)
		values = append(values, opts.LineData{Value: p.Count})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    q.Title,
			Subtitle: "Submissions per day",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(days).AddSeries("Submissions", values)

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := line.Render(c.Writer); err != nil {
		h.log.Error("Failed to render chart", zap.Error(err), zap.Uint("questionnaireID", q.ID))
	}
}
