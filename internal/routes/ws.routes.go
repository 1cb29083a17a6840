package routes

import (
	"zhuangtai/internal/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes registers the live report stream.
// The token is validated in the handler (query parameter), not in the
// bearer middleware.
func RegisterWebSocketRoutes(r *gin.Engine) {
	r.GET("/ws", controllers.HandleWebSocket)
}
