package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cubixparts/quotebuilder/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.QuoteHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/readyz", handler.Ready)

	api := r.Group("/api")
	{
		api.GET("/suggestions", handler.Suggestions)
		api.GET("/quote", handler.GetQuote)
		api.POST("/quote/items", handler.AddItem)
		api.DELETE("/quote/items/:partNo", handler.RemoveItem)
		api.PUT("/quote/items/:partNo/quantity", handler.SetQuantity)
		api.POST("/quote/checkout", handler.Checkout)
		api.POST("/quote/export", handler.Export)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
