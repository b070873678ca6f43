package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Проверка точки без записи в хранилища
	api.POST("/location/check", h.checkLocation)

	// Отчет о местоположении уходит в MQTT и проходит полный конвейер
	api.POST("/locations", h.submitLocation)

	api.GET("/subjects/:id/snapshot", h.getSnapshot)

	api.GET("/pipeline/stats", h.getStats)
}

// RegisterSystemRoutes регистрирует служебные маршруты вне версии API
func (h *Handler) RegisterSystemRoutes(r gin.IRouter) {
	r.GET("/system/health", h.healthCheck)
}
