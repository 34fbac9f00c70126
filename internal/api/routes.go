package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.GET("/cities", handler.GetCities)
		api.GET("/neighborhoods", handler.GetNeighborhoods)
		api.GET("/properties", handler.GetProperties)
		api.GET("/properties/map", handler.GetMap)
		api.GET("/properties/:id", handler.GetProperty)
		api.GET("/investment/opportunities", handler.GetOpportunities)
		api.GET("/investment/analysis/:id", handler.GetAnalysis)
	}
}
