package routes

import (
	"zhuangtai/internal/controllers"
	"zhuangtai/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterMetricsRoutes registers the raw metric endpoints
func RegisterMetricsRoutes(r *gin.Engine) {
	metrics := r.Group("/metrics", middleware.AuthMiddleware())
	{
		metrics.GET("/host", controllers.GetHost)
		metrics.GET("/load", controllers.GetLoad)
		metrics.GET("/cpu", controllers.GetCPU)
		metrics.GET("/memory", controllers.GetMemory)
		metrics.GET("/disks", controllers.GetDisks)
		metrics.GET("/processes", controllers.GetProcesses)
		metrics.GET("/temperature", controllers.GetTemperature)
	}
}
