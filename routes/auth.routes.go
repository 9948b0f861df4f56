package routes

import (
	"github.com/gin-gonic/gin"

	"healthrecord/internal/controllers"
)

func RegisterAuthRoutes(router *gin.Engine, authController *controllers.AuthController, authMiddleware gin.HandlerFunc) {
	authRoutesPublic := router.Group("/auth")
	{
		authRoutesPublic.POST("/signup", authController.Signup)
		authRoutesPublic.POST("/login", authController.Login)
	}
	authRoutesPrivate := router.Group("/auth")
	authRoutesPrivate.Use(authMiddleware)
	{
		authRoutesPrivate.POST("/logout", authController.Logout)
	}
}
