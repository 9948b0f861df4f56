package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"healthrecord/docs"
)

// RegisterSwaggerRoutes serves the API docs at /swagger/index.html.
func RegisterSwaggerRoutes(router *gin.Engine, version string) {
	docs.SwaggerInfo.Title = "Health Record API"
	docs.SwaggerInfo.Description = "Upload medical reports for plain-language explanations and track vitals."
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.PersistAuthorization(true),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}
