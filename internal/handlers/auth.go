package handlers

import (
	"net/http"

	"github.com/hadiajavedd/SaySoPrototype/internal/repository"
	"github.com/hadiajavedd/SaySoPrototype/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	log *zap.Logger
}

func NewAuthHandler(log *zap.Logger) *AuthHandler {
	return &AuthHandler{log: log}
}

func (h *AuthHandler) ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login checks credentials and establishes the session. A failed attempt
// re-renders the login page with no detail about what was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := repository.AuthenticateUser(c.Request.Context(), username, password)
	if err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{"Failed": true})
		return
	}

	session := sessions.Default(c)
	session.Set("userID", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		h.log.Error("Failed to save session on login", zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to login")
		return
	}

	c.Redirect(http.StatusFound, "/homepage")
}

func (h *AuthHandler) ShowSignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

// Signup creates an account. A taken username re-renders the signup page and
// leaves the existing account untouched.
func (h *AuthHandler) Signup(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if !utils.IsValidUsername(username) || !utils.IsAcceptablePassword(password) {
		c.HTML(http.StatusOK, "signup.html", gin.H{"Failed": true})
		return
	}

	if _, err := repository.CreateUser(c.Request.Context(), username, password); err != nil {
		if err != repository.ErrDuplicateUsername {
			h.log.Error("Failed to create user", zap.Error(err))
		}
		c.HTML(http.StatusOK, "signup.html", gin.H{"Failed": true})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session unconditionally.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		h.log.Error("Failed to clear session on logout", zap.Error(err))
	}
	c.Redirect(http.StatusFound, "/")
}

// DeleteAccount removes the caller's account and everything it owns, then
// ends the session.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := repository.DeleteUser(c.Request.Context(), user.ID); err != nil {
		h.log.Error("Failed to delete account", zap.Error(err), zap.Uint("userID", user.ID))
		c.String(http.StatusInternalServerError, "Failed to delete account")
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		h.log.Error("Failed to clear session after account deletion", zap.Error(err))
	}
	c.Redirect(http.StatusFound, "/")
}
