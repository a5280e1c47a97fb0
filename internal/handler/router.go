package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the HTTP surface: both POST endpoints, a health probe and
// CORS open to browser callers.
func NewRouter(insightsHandler *InsightsHandler, segmentsHandler *SegmentsHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.GET("/healthz", HandleHealthz)
	r.POST("/insights", insightsHandler.HandleInsights)
	r.POST("/segments", segmentsHandler.HandleSegments)

	return r
}
