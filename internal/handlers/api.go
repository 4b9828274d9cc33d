package handlers

import (
	"net/http"
	"time"

	"github.com/hadiajavedd/SaySoPrototype/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIHandler serves the JSON endpoints the page scripts talk to.
type APIHandler struct {
	log *zap.Logger
}

func NewAPIHandler(log *zap.Logger) *APIHandler {
	return &APIHandler{log: log}
}

// questionnairePayload is the request body for create and update.
type questionnairePayload struct {
	Title     string                     `json:"title" binding:"required"`
	Questions []repository.QuestionInput `json:"questions"`
}

// Me returns the session user's name, or 401.
func (h *APIHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": user.Username})
}

// MyQuestionnaires lists the session user's questionnaires with ISO-8601
// timestamps. An anonymous caller gets an empty list, not an error.
func (h *APIHandler) MyQuestionnaires(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusOK, []gin.H{})
		return
	}

	qs, err := repository.ListQuestionnaires(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to list questionnaires", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list questionnaires"})
		return
	}

	out := make([]gin.H, 0, len(qs))
	for _, q := range qs {
		out = append(out, gin.H{
			"id":          q.ID,
			"title":       q.Title,
			"created_at":  q.CreatedAt.Format(time.RFC3339),
			"last_opened": q.LastOpened.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetQuestionnaire returns title and ordered questions. Public: the take
// page script uses it without a session.
func (h *APIHandler) GetQuestionnaire(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	q, err := repository.GetQuestionnaire(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	questions := make([]gin.H, 0, len(q.Questions))
	for _, ques := range q.Questions {
		questions = append(questions, gin.H{"text": ques.Text, "qtype": ques.QType})
	}
	c.JSON(http.StatusOK, gin.H{"title": q.Title, "questions": questions})
}

// UpdateQuestionnaire replaces the title and the whole question set.
func (h *APIHandler) UpdateQuestionnaire(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}
	id, valid := parseID(c)
	if !valid {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var payload questionnairePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := repository.UpdateQuestionnaire(c.Request.Context(), id, user.ID, payload.Title, payload.Questions)
	if err == repository.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		h.log.Error("Failed to update questionnaire", zap.Error(err), zap.Uint("questionnaireID", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update questionnaire"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CreateQuestionnaire makes a questionnaire and its questions, returning the
// new id.
func (h *APIHandler) CreateQuestionnaire(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}

	var payload questionnairePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	q, err := repository.CreateQuestionnaire(c.Request.Context(), user.ID, payload.Title, payload.Questions)
	if err != nil {
		h.log.Error("Failed to create questionnaire", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create questionnaire"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": q.ID})
}

// DeleteQuestionnaire removes the questionnaire if the session user owns it.
func (h *APIHandler) DeleteQuestionnaire(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}
	id, valid := parseID(c)
	if !valid {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	err := repository.DeleteQuestionnaire(c.Request.Context(), id, user.ID)
	if err == repository.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		h.log.Error("Failed to delete questionnaire", zap.Error(err), zap.Uint("questionnaireID", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete questionnaire"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
