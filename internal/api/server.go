// Package api exposes the test engine over HTTP.
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"hypotest/internal"

	"github.com/gin-gonic/gin"
)

// Server is the HTTP front end
type Server struct {
	router  *gin.Engine
	metrics *Metrics
	logger  *internal.Logger
}

// NewServer wires the routes of runs, metrics and health checks
func NewServer(runs *RunHandler, metrics *Metrics, logger *internal.Logger) *Server {
	router := gin.New()
	s := &Server{router: router, metrics: metrics, logger: logger.WithComponent("API")}

	router.Use(gin.Recovery(), s.instrument())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	runs.Register(router)
	return s
}

// Handler returns the root handler, for tests and custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

// instrument counts requests and logs them at debug level
func (s *Server) instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		s.metrics.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		s.logger.Debug("%s %s -> %d in %v", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
	}
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
