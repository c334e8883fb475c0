package preview

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vtree"
)

// ShutdownTimeout bounds graceful shutdown of the HTTP server.
const ShutdownTimeout = 5 * time.Second

// Config configures the preview server.
type Config struct {
	// Addr is the listen address used by Run.
	Addr string

	Session *Session

	// Title is the page title (default: "vtree preview").
	Title string

	// Metrics, when set, is served at /metrics.
	Metrics http.Handler

	Logger *slog.Logger
}

// Server serves one Session.
type Server struct {
	config  Config
	session *Session
	hub     *Hub
	router  chi.Router
	logger  *slog.Logger
}

// New creates a server and subscribes its hub to the session's renders.
func New(cfg Config) *Server {
	if cfg.Title == "" {
		cfg.Title = "vtree preview"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:  cfg,
		session: cfg.Session,
		hub:     NewHub(),
		logger:  logger,
	}
	s.hub.greet = func(r *http.Request) (Message, bool) {
		html, err := s.session.Snapshot(r.Context())
		if err != nil {
			return Message{}, false
		}
		return Message{Type: MessageRender, HTML: html}, true
	}
	s.session.OnRender(s.hub.Publish)
	s.router = s.routes()
	return s
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handlePage)
	r.Get("/snapshot", s.handleSnapshot)
	r.Get("/render", s.handleRender)
	r.Get("/shallow", s.handleShallow)
	r.Post("/events/{type}", s.handleEvent)
	r.Get("/ws", s.hub.HandleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if s.config.Metrics != nil {
		r.Handle("/metrics", s.config.Metrics)
	}
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	html, err := s.session.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	sr := render.NewStreamingRenderer(w, render.RendererConfig{})
	err = sr.RenderPage(render.PageData{
		Title:    s.config.Title + " - " + s.session.Demo().Name,
		BodyHTML: `<div id="root">` + html + "</div>\n",
		Styles:   []string{pageStyle},
		Scripts:  []render.ScriptTag{{Inline: clientScript}},
	})
	if err != nil {
		s.logger.Error("page render failed", "error", err)
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	html, err := s.session.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeHTML(w, html)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	html, err := render.Render(s.session.Demo().Root(), nil, vtree.WithLogger(s.logger))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeHTML(w, html)
}

func (s *Server) handleShallow(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, render.RenderShallow(s.session.Demo().Root()))
}

type eventResponse struct {
	HTML  string `json:"html,omitempty"`
	Error string `json:"error,omitempty"`
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	event := chi.URLParam(r, "type")
	target := r.URL.Query().Get("target")
	if target == "" {
		writeJSON(w, http.StatusBadRequest, eventResponse{Error: "missing target"})
		return
	}

	html, err := s.session.Dispatch(r.Context(), target, event, r.URL.Query().Get("value"))
	switch {
	case errors.Is(err, ErrNoTarget):
		writeJSON(w, http.StatusNotFound, eventResponse{Error: err.Error()})
	case errors.Is(err, ErrNoListener):
		writeJSON(w, http.StatusUnprocessableEntity, eventResponse{Error: err.Error()})
	case err != nil && html == "":
		writeJSON(w, http.StatusBadRequest, eventResponse{Error: err.Error()})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, eventResponse{HTML: html, Error: err.Error()})
	default:
		writeJSON(w, http.StatusOK, eventResponse{HTML: html})
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve runs the session loop and the HTTP server on ln until ctx is done
// or either fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.session.Run(ctx)
	})
	g.Go(func() error {
		s.logger.Info("preview server running", "url", "http://"+ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func writeHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
