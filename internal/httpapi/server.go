// Package httpapi exposes the summarizer over HTTP.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"textsum/internal/config"
	"textsum/internal/logging"
	"textsum/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg     config.ServerConfig
	handler http.Handler
	logger  *slog.Logger
}

// New builds the router and middleware stack. defaults supplies the sentence
// count and style used when a request leaves them out.
func New(cfg config.ServerConfig, defaults config.SummarizerConfig, svc Summarizer, logger *slog.Logger, rec metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	if rec == nil {
		rec = metrics.Noop{}
	}

	h := &handler{
		svc:          svc,
		maxBodyBytes: cfg.MaxBodyBytes,
		defaultCount: defaults.MaxSentences,
		defaultStyle: defaults.Style,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/summarize", h.summarize)
	mux.HandleFunc("POST /api/v1/summarize/upload", h.upload)
	mux.HandleFunc("GET /healthz", healthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	return &Server{
		cfg: cfg,
		handler: chain(mux,
			requestID(logger),
			recoverer,
			accessLog,
			rateLimit(newLimiter(cfg.RateLimit, cfg.RateBurst)),
			instrument(rec),
		),
		logger: logger,
	}
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", slog.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("http server shutdown initiated")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}
