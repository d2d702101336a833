package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/class-union/union-server/internal/access"
	"github.com/class-union/union-server/internal/models"
	"github.com/class-union/union-server/internal/utils"
)

type AuthHandler struct {
	BaseHandler
}

func NewAuthHandler(logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
	}
}

// Me returns the authenticated user's profile
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Navigation returns the nav items visible to the caller. Anonymous callers
// get the public set; authenticated callers get their role's set.
// @Summary Navigation for the caller's role
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /navigation [get]
func (h *AuthHandler) Navigation(c *gin.Context) {
	var role *models.UserRole
	if user, ok := GetUserFromContext(c); ok {
		role = &user.Role
	}

	c.JSON(http.StatusOK, gin.H{
		"items": access.NavigationFor(role),
	})
}
