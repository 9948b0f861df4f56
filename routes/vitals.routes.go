package routes

import (
	"github.com/gin-gonic/gin"

	"healthrecord/internal/controllers"
)

func RegisterVitalsRoutes(router *gin.Engine, vitalsController *controllers.VitalsController, authMiddleware gin.HandlerFunc) {
	vitalsRoutes := router.Group("/vitals")
	vitalsRoutes.Use(authMiddleware)
	{
		vitalsRoutes.POST("/add", vitalsController.AddVitals)
		vitalsRoutes.GET("/myvitals", vitalsController.MyVitals)
		vitalsRoutes.DELETE("/:id", vitalsController.DeleteVitals)
	}
}
