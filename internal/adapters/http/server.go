package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/andrescamacho/caveplan-go/internal/adapters/metrics"
	"github.com/andrescamacho/caveplan-go/internal/application/common"
)

// Server exposes the planning engine over HTTP
type Server struct {
	engine *gin.Engine
	logger zerolog.Logger
	srv    *http.Server
}

// NewServer builds the gin engine and wires all routes
func NewServer(mediator common.Mediator, logger zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))

	handlers := NewHandlers(mediator, logger)

	engine.GET("/health", handlers.HandleHealth)
	if metrics.IsEnabled() {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})))
	}

	api := engine.Group("/api/v1")
	{
		api.GET("/plans", handlers.HandleListPlans)
		api.POST("/plans", handlers.HandleSavePlan)
		api.GET("/plans/:id", handlers.HandleGetPlan)
		api.DELETE("/plans/:id", handlers.HandleDeletePlan)
		api.POST("/plans/:id/simulate", handlers.HandleSimulate)
		api.POST("/plans/:id/fix-distance", handlers.HandleFixDistance)
		api.GET("/configuration", handlers.HandleGetConfiguration)
		api.PUT("/configuration", handlers.HandlePutConfiguration)
	}

	return &Server{engine: engine, logger: logger}
}

// Engine exposes the router, mainly for tests
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Listen serves HTTP on the given address until the context is cancelled
func (s *Server) Listen(ctx context.Context, addr string) error {
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()

	s.logger.Info().Str("addr", addr).Msg("HTTP server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// requestLogger logs each request with method, path, status, and latency
func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("http request")
	}
}
