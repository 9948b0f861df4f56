package routes

import (
	"github.com/gin-gonic/gin"

	"healthrecord/internal/controllers"
)

func RegisterReportRoutes(router *gin.Engine, reportController *controllers.ReportController, authMiddleware gin.HandlerFunc) {
	reportRoutes := router.Group("/report")
	reportRoutes.Use(authMiddleware)
	{
		reportRoutes.POST("/upload", reportController.UploadReport)
		reportRoutes.GET("/myreports", reportController.MyReports)
		reportRoutes.GET("/insights", reportController.Insights)
		reportRoutes.GET("/:id", reportController.GetReport)
		reportRoutes.DELETE("/:id", reportController.DeleteReport)
	}
}
