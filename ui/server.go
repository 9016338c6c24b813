package ui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"advocate/app"
	"advocate/domain/dispute"
	"advocate/internal/agents"
	"advocate/internal/logging"
	"advocate/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html static/css/*.css
var embeddedFiles embed.FS

// CaseRunner runs a complaint through the advocate pipeline
type CaseRunner interface {
	Run(ctx context.Context, complaint dispute.Complaint, opts app.RunOptions) (*dispute.Case, error)
}

// Server is the web front end for the advocate
type Server struct {
	router        *gin.Engine
	runner        CaseRunner
	templates     *template.Template
	keyConfigured bool
	providerLabel string
	logger        *zap.Logger
}

// Option customizes server construction
type Option func(*Server)

// WithProvider names the configured LLM provider in the key prompts.
func WithProvider(provider string) Option {
	return func(s *Server) {
		s.providerLabel = models.ProviderLabel(provider)
	}
}

// NewServer creates a web server. keyConfigured reports whether the
// environment already provides an API key, so the form field is optional.
func NewServer(runner CaseRunner, keyConfigured bool, opts ...Option) (*Server, error) {
	s := &Server{
		router:        gin.New(),
		runner:        runner,
		keyConfigured: keyConfigured,
		providerLabel: models.ProviderLabel(models.ProviderGemini),
		logger:        logging.Named("ui"),
	}
	for _, opt := range opts {
		opt(s)
	}

	funcMap := template.FuncMap{
		"money": agents.FormatAmount,
		"sectorTitle": func(sec dispute.Sector) string {
			return sec.Title()
		},
		"seconds": func(d time.Duration) string {
			return fmt.Sprintf("%.1fs", d.Seconds())
		},
	}

	templatesFS, err := fs.Sub(embeddedFiles, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to create templates filesystem: %w", err)
	}
	s.templates, err = template.New("").Funcs(funcMap).ParseFS(templatesFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/cases", s.handleCreateCase)
	s.router.POST("/cases/letter", s.handleDownloadLetter)
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Handler exposes the router for tests and custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting Universal Advocate UI", zap.String("addr", "http://"+addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down UI server")
		return srv.Shutdown(shutdownCtx)
	}
}
