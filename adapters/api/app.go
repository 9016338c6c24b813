package api

import (
	"context"
	"net/http"
	"time"

	"advocate/app"
	"advocate/domain/dispute"
	"advocate/internal/logging"
	"advocate/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// CaseRunner runs a complaint through the advocate pipeline
type CaseRunner interface {
	Run(ctx context.Context, complaint dispute.Complaint, opts app.RunOptions) (*dispute.Case, error)
}

// UsageReporter summarizes recorded model usage
type UsageReporter interface {
	Summary(ctx context.Context, start, end time.Time) (*models.UsageSummary, error)
}

// App is the JSON API
type App struct {
	router *chi.Mux
	runner CaseRunner
	usage  UsageReporter
	logger *zap.Logger
}

// NewApp creates the JSON API. usage may be nil, in which case the usage
// endpoint reports an empty summary.
func NewApp(runner CaseRunner, usage UsageReporter) *App {
	a := &App{
		router: chi.NewRouter(),
		runner: runner,
		usage:  usage,
		logger: logging.Named("api"),
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(a.requestLogger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the API routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)

	a.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/cases", a.handleCreateCase)
		r.Post("/route", a.handleRoute)
		r.Post("/refund", a.handleRefund)
		r.Get("/usage", a.handleUsage)
	})
}

// Handler exposes the router
func (a *App) Handler() http.Handler {
	return a.router
}

// Start serves until ctx is cancelled
func (a *App) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting advocate API", zap.String("addr", addr))
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
		return srv.Shutdown(shutdownCtx)
	}
}

func (a *App) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		a.logger.Info("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("latency", time.Since(start)))
	})
}
