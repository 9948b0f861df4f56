package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthrecord/internal/services"
)

type AuthController struct {
	auth       *services.AuthService
	production bool
}

func NewAuthController(auth *services.AuthService, production bool) *AuthController {
	return &AuthController{auth: auth, production: production}
}

// Signup godoc
// @Summary Register a new user
// @Description Create an account and receive a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param user body services.SignupInput true "Signup data"
// @Success 201 {object} map[string]interface{} "User signed up successfully"
// @Failure 400 {object} map[string]interface{} "Invalid data or email already registered"
// @Failure 500 {object} map[string]interface{} "Error during signup"
// @Router /auth/signup [post]
func (ac *AuthController) Signup(c *gin.Context) {
	var input services.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	result, err := ac.auth.Signup(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, ac.production)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User signed up successfully",
		"user":    result.User,
		"token":   result.Token,
	})
}

// Login godoc
// @Summary Log in
// @Description Exchange email and password for a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginInput true "Login credentials"
// @Success 200 {object} map[string]interface{} "Login successful"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var input services.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	result, err := ac.auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err, ac.production)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    result.User,
		"token":   result.Token,
	})
}

// Logout godoc
// @Summary Log out
// @Description Sessions are stateless; the client discards its token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Logout successful"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful",
	})
}
