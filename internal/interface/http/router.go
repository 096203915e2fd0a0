package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skylens/photogenic-sky/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", handler.Healthz)

	api := router.Group("/api/v1")
	{
		api.GET("/locations", handler.ListLocations)
		api.GET("/locations/:id", handler.GetLocation)
		api.GET("/sensors", handler.ListSensors)
		api.GET("/sensors/:id", handler.GetSensor)

		guarded := api.Group("", authMiddleware(cfg.HTTP.Auth))
		{
			guarded.POST("/locations", handler.CreateLocation)
			guarded.DELETE("/locations/:id", handler.DeleteLocation)
			guarded.POST("/locations/:id/refresh", handler.RefreshLocation)
		}
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
