package handlers

import (
	"net/http"

	"github.com/hadiajavedd/SaySoPrototype/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ResponseHandler struct {
	log *zap.Logger
}

func NewResponseHandler(log *zap.Logger) *ResponseHandler {
	return &ResponseHandler{log: log}
}

// ShowTakePage renders the public answer form. No login required.
func (h *ResponseHandler) ShowTakePage(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		c.String(http.StatusNotFound, "Questionnaire not found")
		return
	}

	q, err := repository.GetQuestionnaire(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusNotFound, "Questionnaire not found")
		return
	}
	h.touch(c, q.ID)

	c.HTML(http.StatusOK, "take_questionnaire.html", gin.H{"Questionnaire": q})
}

// SubmitResponse accepts an anonymous submission and renders the thank-you
// page.
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		c.String(http.StatusNotFound, "Questionnaire not found")
		return
	}

	q, err := repository.GetQuestionnaire(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusNotFound, "Questionnaire not found")
		return
	}
	h.touch(c, q.ID)

	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "Invalid form data")
		return
	}

	r, err := repository.SubmitResponse(c.Request.Context(), id, c.Request.PostForm)
	if err != nil {
		h.log.Error("Failed to store response", zap.Error(err), zap.Uint("questionnaireID", id))
		c.String(http.StatusInternalServerError, "Failed to store response")
		return
	}

	h.log.Info("Response recorded",
		zap.Uint("questionnaireID", id),
		zap.Uint("responseID", r.ID))
	c.HTML(http.StatusOK, "thank_you.html", gin.H{"Questionnaire": q})
}

// ShowResponses renders all collected responses aligned to the current
// question order, most recent first. Owner only.
func (h *ResponseHandler) ShowResponses(c *gin.Context) {
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

	responses, err := repository.ListResponses(c.Request.Context(), q.ID)
	if err != nil {
		h.log.Error("Failed to load responses", zap.Error(err), zap.Uint("questionnaireID", q.ID))
		c.String(http.StatusInternalServerError, "Failed to load responses")
		return
	}

	rows := repository.AlignResponses(q.Questions, responses)
	for _, row := range rows {
		if row.Corrupt {
			h.log.Warn("Unreadable answers payload rendered as blank row",
				zap.Uint("questionnaireID", q.ID),
				zap.Time("submittedAt", row.SubmittedAt))
		}
	}

	c.HTML(http.StatusOK, "view_responses.html", gin.H{
		"Questionnaire": q,
		"Responses":     rows,
	})
}

func (h *ResponseHandler) touch(c *gin.Context, id uint) {
	if err := repository.TouchLastOpened(c.Request.Context(), id); err != nil {
		h.log.Warn("Failed to update last-opened stamp", zap.Error(err), zap.Uint("questionnaireID", id))
	}
}
