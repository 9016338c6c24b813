package ui

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// setupMiddleware configures Gin middleware and static assets
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestLogger())

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		s.logger.Error("failed to create static filesystem", zap.Error(err))
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// requestLogger logs one line per request
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
