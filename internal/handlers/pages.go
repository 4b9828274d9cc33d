package handlers

import (
	"net/http"
	"strconv"

	"github.com/hadiajavedd/SaySoPrototype/internal/models"
	"github.com/hadiajavedd/SaySoPrototype/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PageHandler struct {
	log *zap.Logger
}

func NewPageHandler(log *zap.Logger) *PageHandler {
	return &PageHandler{log: log}
}

// parseID pulls the numeric :id path parameter. A non-numeric id behaves
// like a missing resource.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (h *PageHandler) Homepage(c *gin.Context) {
	user, _ := currentUser(c)
	c.HTML(http.StatusOK, "homepage.html", gin.H{"Username": user.Username})
}

func (h *PageHandler) Profile(c *gin.Context) {
	user, _ := currentUser(c)
	c.HTML(http.StatusOK, "profile.html", gin.H{"Username": user.Username})
}

func (h *PageHandler) CreateQuestionnaire(c *gin.Context) {
	c.HTML(http.StatusOK, "create_questionnaire.html", gin.H{})
}

func (h *PageHandler) Help(c *gin.Context) {
	c.HTML(http.StatusOK, "help.html", gin.H{})
}

// ViewQuestionnaire renders the owner's read-only view and touches the
// last-opened stamp.
func (h *PageHandler) ViewQuestionnaire(c *gin.Context) {
	q, ok := h.ownedQuestionnaire(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "view_questionnaire.html", gin.H{"Questionnaire": q})
}

// EditQuestionnaire renders the editor shell; the question list itself is
// fetched by the page's script through the JSON API.
func (h *PageHandler) EditQuestionnaire(c *gin.Context) {
	q, ok := h.ownedQuestionnaire(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "edit_questionnaire.html", gin.H{"Questionnaire": q})
}

// ownedQuestionnaire loads the questionnaire for the session user, writes
// the 404 itself when that fails, and stamps last-opened on success.
func (h *PageHandler) ownedQuestionnaire(c *gin.Context) (*models.Questionnaire, bool) {
	user, exists := currentUser(c)
	if !exists {
		c.Redirect(http.StatusFound, "/")
		return nil, false
	}
	id, valid := parseID(c)
	if !valid {
		c.String(http.StatusNotFound, "Questionnaire not found")
		return nil, false
	}

	questionnaire, err := repository.GetOwnedQuestionnaire(c.Request.Context(), id, user.ID)
	if err != nil {
		c.String(http.StatusNotFound, "Questionnaire not found")
		return nil, false
	}

	if err := repository.TouchLastOpened(c.Request.Context(), questionnaire.ID); err != nil {
		h.log.Warn("Failed to update last-opened stamp", zap.Error(err), zap.Uint("questionnaireID", questionnaire.ID))
	}
	return questionnaire, true
}
