// Package http exposes stories and sessions as a JSON API.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/abenteuer"
	"github.com/aretw0/abenteuer/internal/logging"
	"github.com/aretw0/abenteuer/internal/metrics"
	"github.com/aretw0/abenteuer/internal/presentation/graph"
	"github.com/aretw0/abenteuer/pkg/catalog"
	"github.com/aretw0/abenteuer/pkg/domain"
	"github.com/aretw0/abenteuer/pkg/lexicon"
	"github.com/aretw0/abenteuer/pkg/session"
	"github.com/go-chi/chi/v5"
)

// Engine defines what the server needs from the Abenteuer core.
// *abenteuer.Engine is the production implementation.
type Engine interface {
	Stories() []catalog.Entry
	Story(storyID string) (catalog.Entry, error)
	Manager() *session.Manager
	Lexicon() *lexicon.Lexicon
}

// Server holds the handler dependencies.
type Server struct {
	Engine  Engine
	Streams *StreamManager
	Metrics *metrics.Collector
	Logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics mounts /metrics.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Server) {
		s.Metrics = c
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewServer creates a Server for the engine and subscribes it to
// deferred transition updates.
func NewServer(engine Engine, opts ...Option) *Server {
	server := &Server{
		Engine:  engine,
		Streams: NewStreamManager(),
		Logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}
	server.Streams.logger = server.Logger

	// Deferred transitions complete on a timer; push the new view to
	// subscribers of that session.
	engine.Manager().OnChange(func(id string, view domain.View) {
		if bytes, err := json.Marshal(view); err == nil {
			server.Streams.Broadcast(id, string(bytes))
		}
	})
	return server
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	return NewServer(engine, opts...).Handler()
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	r.Get("/stories", s.ListStories)
	r.Get("/stories/{story}", s.GetStory)
	r.Get("/stories/{story}/graph", s.GetGraph)

	r.Post("/sessions", s.CreateSession)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", s.GetSession)
		r.Delete("/", s.DeleteSession)
		r.Post("/choices", s.Choose)
		r.Post("/back", s.Back)
		r.Post("/reset", s.Reset)
		r.Get("/events", s.SubscribeEvents)
	})

	r.Get("/lexicon/{word}", s.Translate)
	r.Post("/lexicon/annotate", s.Annotate)

	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics.Handler())
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "abenteuer-http",
		"version": strings.TrimSpace(abenteuer.Version),
	})
}

// ListStories handles the GET /stories request.
func (s *Server) ListStories(w http.ResponseWriter, r *http.Request) {
	entries := s.Engine.Stories()
	resp := make([]storySummary, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, summarize(e))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// GetStory handles the GET /stories/{story} request.
func (s *Server) GetStory(w http.ResponseWriter, r *http.Request) {
	entry, err := s.Engine.Story(chi.URLParam(r, "story"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, storyDetail{storySummary: summarize(entry), Scenes: entry.Story.Scenes})
}

// GetGraph handles the GET /stories/{story}/graph request. With
// ?session=<id> the session's path is highlighted.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	entry, err := s.Engine.Story(chi.URLParam(r, "story"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var overlay *graph.GraphOverlay
	if id := r.URL.Query().Get("session"); id != "" {
		sess, err := s.Engine.Manager().Get(id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		overlay = graph.OverlayFromState(sess.State())
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(graph.GenerateMermaid(entry.Story, overlay)))
}

// CreateSession handles the POST /sessions request.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.Story == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "story is required"})
		return
	}

	sess, err := s.Engine.Manager().Create(r.Context(), body.Story, body.Start)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.Logger.InfoContext(r.Context(), "session started", "session_id", sess.ID(), "story", body.Story)
	s.writeJSON(w, http.StatusCreated, sessionResponse{ID: sess.ID(), View: sess.View()})
}

// GetSession handles the GET /sessions/{id} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, sessionResponse{ID: sess.ID(), View: sess.View()})
}

// DeleteSession handles the DELETE /sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Engine.Manager().Delete(id); err != nil {
		s.writeError(w, err)
		return
	}
	s.Streams.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

// Choose handles the POST /sessions/{id}/choices request.
func (s *Server) Choose(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var body chooseRequest
	if !s.decode(w, r, &body) {
		return
	}

	view, err := sess.Choose(r.Context(), body.SceneID, body.ChoiceID)
	s.respond(w, r, sess, view, err)
}

// Back handles the POST /sessions/{id}/back request.
func (s *Server) Back(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	view, err := sess.Back(r.Context())
	s.respond(w, r, sess, view, err)
}

// Reset handles the POST /sessions/{id}/reset request. An empty body
// restarts at the session's original entry.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var body resetRequest
	if !s.decodeOptional(w, r, &body) {
		return
	}

	var view domain.View
	var err error
	if body.Start != "" {
		view, err = sess.Reset(r.Context(), body.Start)
	} else {
		view, err = sess.Restart(r.Context())
	}
	s.respond(w, r, sess, view, err)
}

// Translate handles the GET /lexicon/{word} request.
func (s *Server) Translate(w http.ResponseWriter, r *http.Request) {
	word := chi.URLParam(r, "word")
	translation, known := s.Engine.Lexicon().Lookup(word)
	s.writeJSON(w, http.StatusOK, translationResponse{Word: lexicon.Clean(word), Translation: translation, Known: known})
}

// Annotate handles the POST /lexicon/annotate request.
func (s *Server) Annotate(w http.ResponseWriter, r *http.Request) {
	var body annotateRequest
	if !s.decode(w, r, &body) {
		return
	}
	s.writeJSON(w, http.StatusOK, s.Engine.Lexicon().Annotate(body.Text))
}

// -- Helpers --

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.Engine.Manager().Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return sess, true
}

// respond writes the outcome of a navigation event. Ignorable rejections
// are not errors for the client: the unchanged view is returned with the
// reason.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, sess *session.Session, view domain.View, err error) {
	resp := sessionResponse{ID: sess.ID(), View: view}
	if err != nil {
		if !domain.IsIgnorable(err) {
			s.writeError(w, err)
			return
		}
		s.Logger.DebugContext(r.Context(), "navigation ignored", "session_id", sess.ID(), "err", err)
		resp.Ignored = err.Error()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.Logger.Warn("invalid request body", "path", r.URL.Path, "err", err)
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// decodeOptional is decode for endpoints whose body may be empty, including
// chunked requests of unknown length.
func (s *Server) decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	s.Logger.Warn("invalid request body", "path", r.URL.Path, "err", err)
	s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	return false
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrStoryNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSessionClosed):
		status = http.StatusGone
	default:
		s.Logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}
