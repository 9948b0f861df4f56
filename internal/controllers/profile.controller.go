package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthrecord/internal/services"
)

type ProfileController struct {
	auth       *services.AuthService
	production bool
}

func NewProfileController(auth *services.AuthService, production bool) *ProfileController {
	return &ProfileController{auth: auth, production: production}
}

// GetUser godoc
// @Summary Get the current user
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "User profile"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /profile/getuser [get]
func (pc *ProfileController) GetUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := pc.auth.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, pc.production)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user.Summary(),
	})
}

// GetAllUsers godoc
// @Summary List all users
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Users"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Error fetching all users"
// @Router /profile/getallusers [get]
func (pc *ProfileController) GetAllUsers(c *gin.Context) {
	users, err := pc.auth.AllUsers(c.Request.Context())
	if err != nil {
		respondError(c, err, pc.production)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
	})
}
