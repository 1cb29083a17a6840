package routes

import (
	"zhuangtai/internal/controllers"
	"zhuangtai/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterStatusRoutes registers the report endpoints
func RegisterStatusRoutes(r *gin.Engine) {
	status := r.Group("/status", middleware.AuthMiddleware())
	{
		status.GET("/", controllers.GetStatusText)
		status.GET("/lines", controllers.GetStatusLines)
		status.GET("/json", controllers.GetStatusJSON)
		status.GET("/image", controllers.GetStatusImage)
	}
}
