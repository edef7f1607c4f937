// Package server exposes the registration pages over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/validation"
)

// Routes served by the registration site.
const (
	FormPath        = "/"
	ThanksPath      = "/thanks"
	RequestIDHeader = "X-Request-ID"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithShutdownGrace bounds how long Run waits for in-flight requests.
func WithShutdownGrace(grace time.Duration) Option {
	return func(s *Server) {
		if grace >= 0 {
			s.grace = grace
		}
	}
}

// WithDocumentInfo sets the title and version of the published OpenAPI
// document.
func WithDocumentInfo(info openapi.Info) Option {
	return func(s *Server) {
		s.info = info
	}
}

// WithRequestIDs replaces the request id generator.
func WithRequestIDs(next func() string) Option {
	return func(s *Server) {
		if next != nil {
			s.newID = next
		}
	}
}

// Server serves the form, accepts submissions and redirects to the thanks
// page once answers are recorded.
type Server struct {
	orch   *orchestrator.Orchestrator
	logger *zap.Logger
	grace  time.Duration
	info   openapi.Info
	newID  func() string
	mux    *http.ServeMux
}

// New registers the routes served by the registration site.
func New(orch *orchestrator.Orchestrator, options ...Option) (*Server, error) {
	if orch == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	s := &Server{
		orch:   orch,
		logger: zap.NewNop(),
		grace:  5 * time.Second,
		newID:  uuid.NewString,
		mux:    http.NewServeMux(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.info.FormPath = FormPath
	s.info.ThanksPath = ThanksPath

	s.mux.HandleFunc("GET "+FormPath+"{$}", s.handleForm)
	s.mux.HandleFunc("POST "+FormPath+"{$}", s.handleSubmit)
	s.mux.HandleFunc("GET "+ThanksPath, s.handleThanks)
	s.mux.Handle("GET /"+vanilla.StylesheetName, http.FileServerFS(vanilla.AssetsFS()))
	s.mux.HandleFunc("GET /openapi.json", s.handleOpenAPI)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return s, nil
}

// Handler returns the routed handler wrapped with request id and access log
// middleware.
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.withAccessLog(s.mux))
}

// Run serves on listener until ctx is cancelled, then shuts down within the
// configured grace period.
func (s *Server) Run(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", listener.Addr().String()))
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.grace)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	page, err := s.orch.Generate(r.Context(), s.request(r))
	if err != nil {
		s.fail(w, r, "render form", err)
		return
	}
	writeHTML(w, http.StatusOK, page)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	result, err := s.orch.Submit(r.Context(), s.request(r), validation.SubmissionFromValues(r.PostForm))
	if err != nil {
		s.fail(w, r, "submit", err)
		return
	}

	switch {
	case result.Accepted:
		http.Redirect(w, r, ThanksPath, http.StatusSeeOther)
	case result.StorageErr != nil:
		writeHTML(w, http.StatusInternalServerError, result.Page)
	default:
		writeHTML(w, http.StatusOK, result.Page)
	}
}

func (s *Server) handleThanks(w http.ResponseWriter, r *http.Request) {
	page, err := s.orch.GenerateThanks(r.Context(), s.request(r))
	if err != nil {
		s.fail(w, r, "render thanks", err)
		return
	}
	writeHTML(w, http.StatusOK, page)
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	schema, err := s.orch.Schema()
	if err != nil {
		s.fail(w, r, "build schema", err)
		return
	}
	doc, err := openapi.Document(r.Context(), schema, s.info)
	if err != nil {
		s.fail(w, r, "build document", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		s.logger.Warn("write openapi response", zap.Error(err))
	}
}

// request reads the optional theme and variant query parameters.
func (s *Server) request(r *http.Request) orchestrator.Request {
	query := r.URL.Query()
	return orchestrator.Request{
		ThemeName:    strings.TrimSpace(query.Get("theme")),
		ThemeVariant: strings.TrimSpace(query.Get("variant")),
		RenderOptions: render.RenderOptions{
			Action:    FormPath,
			RequestID: RequestID(r.Context()),
		},
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, action string, err error) {
	s.logger.Error(action+" failed",
		zap.String("request_id", RequestID(r.Context())),
		zap.Error(err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
