package wsserver

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// buildRouter wires the websocket endpoint plus health and metrics routes.
func buildRouter(logger *log.Logger, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Catalog))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws", serveWS(logger, deps))

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(catalog catalogReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if catalog == nil || catalog.Len() == 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "catalog not loaded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
