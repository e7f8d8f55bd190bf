package routes

import (
	"freelance_backend/internal/handlers"
	"freelance_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует служебные HTTP маршруты.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	appHandlers.HealthHandler.RegisterRoutes(ginRouter)
	logger.Info("Ops routes registered", "routes", len(ginRouter.Routes()))
}
