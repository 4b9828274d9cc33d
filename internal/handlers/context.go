package handlers

import (
	"github.com/hadiajavedd/SaySoPrototype/internal/models"

	"github.com/gin-gonic/gin"
)

// UserContextKey is where the user-loader middleware stores the
// authenticated user for the duration of a request.
const UserContextKey = "user"

// currentUser returns the authenticated user loaded into the request
// context, if any.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(UserContextKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
