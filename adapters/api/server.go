package api

import (
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all engine routes registered
func NewRouter(handler *Handler, mode string) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/healthz", handler.Health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/design/analyze", handler.AnalyzeDesign)
		v1.POST("/design/sample-size", handler.RequiredSamples)
		v1.POST("/design/power-sweep", handler.PowerSweep)
		v1.POST("/design/report.html", handler.ReportHTML)
		v1.POST("/design/report.xlsx", handler.ReportWorkbook)
	}

	return router
}
