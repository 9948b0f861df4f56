package routes

import (
	"github.com/gin-gonic/gin"

	"healthrecord/internal/controllers"
)

func RegisterProfileRoutes(router *gin.Engine, profileController *controllers.ProfileController, authMiddleware gin.HandlerFunc) {
	profileRoutes := router.Group("/profile")
	profileRoutes.Use(authMiddleware)
	{
		profileRoutes.GET("/getuser", profileController.GetUser)
		profileRoutes.GET("/getallusers", profileController.GetAllUsers)
	}
}
