package httpsvc

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// NewRouter собирает gin.Engine со всеми маршрутами продаж.
func NewRouter(handler *SalesHandler, logger *log.Entry) *gin.Engine {
	if logger == nil {
		logger = handler.logger
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger))
	RegisterRoutes(engine, handler)
	return engine
}

// RegisterRoutes привязывает обработчики к маршрутам.
func RegisterRoutes(r gin.IRouter, handler *SalesHandler) {
	r.GET("/ping", handler.handlePing)

	salesGroup := r.Group("/sales")
	salesGroup.POST("", handler.handleCreateSale)
	salesGroup.GET("", handler.handleListSales)
	salesGroup.GET("/:id", handler.handleGetSale)
	salesGroup.PATCH("/:id", handler.handleUpdateSale)
	salesGroup.DELETE("/:id", handler.handleDeleteSale)
}

func requestLogger(logger *log.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(log.Fields{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		if c.Writer.Status() >= 500 {
			entry.Warn("http request completed with server error")
			return
		}
		entry.Debug("http request completed")
	}
}
