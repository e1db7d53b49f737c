package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mikey/naija-scam-detector/internal/config"
	"github.com/mikey/naija-scam-detector/internal/core"
	"github.com/mikey/naija-scam-detector/internal/language"
	"github.com/mikey/naija-scam-detector/internal/ports"
	"github.com/mikey/naija-scam-detector/internal/utils"
)

//go:embed templates/page.html
var templates embed.FS

// RequestIDHeader carries the per-request id on every response
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// Server implements the browser form around the analyzer
type Server struct {
	analyzer      *core.Analyzer
	recorder      core.FeedbackRecorder
	selector      *language.Selector
	textProcessor *utils.TextProcessor
	ui            config.UIConfig
	cfg           config.ServerConfig
	logger        *zap.Logger
	page          *template.Template
	server        *http.Server

	mu        sync.Mutex
	listener  net.Listener
	ready     chan struct{}
	readyOnce sync.Once
}

var _ ports.Shell = (*Server)(nil)

// NewServer creates a new web shell
func NewServer(
	analyzer *core.Analyzer,
	recorder core.FeedbackRecorder,
	selector *language.Selector,
	textProcessor *utils.TextProcessor,
	ui config.UIConfig,
	cfg config.ServerConfig,
	logger *zap.Logger,
) (*Server, error) {
	page, err := template.ParseFS(templates, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	s := &Server{
		analyzer:      analyzer,
		recorder:      recorder,
		selector:      selector,
		textProcessor: textProcessor,
		ui:            ui,
		cfg:           cfg,
		logger:        logger,
		page:          page,
		ready:         make(chan struct{}),
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		ErrorLog:          zap.NewStdLog(logger),
	}
	return s, nil
}

// Handler returns the routes of the form
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /feedback", s.handleFeedback)
	return s.withRequestID(mux)
}

// Start listens on the configured address and serves until Stop is called
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.ListenAddress, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	s.readyOnce.Do(func() { close(s.ready) })

	s.logger.Info("Web shell starting", zap.String("address", ln.Addr().String()))

	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web shell failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts the server down within the shutdown timeout
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to stop web shell: %w", err)
	}
	s.logger.Info("Web shell stopped")
	return nil
}

// Ready is closed once the server is listening
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the listening address, or "" before Start
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))

		s.logger.Debug("Handled request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
