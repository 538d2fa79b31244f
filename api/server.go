package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wricardo/christmas-fun/game/config"
	"github.com/wricardo/christmas-fun/game/engine"
	"github.com/wricardo/christmas-fun/game/service"
	"github.com/wricardo/christmas-fun/game/session"
	"github.com/wricardo/christmas-fun/game/spirit"
	"github.com/wricardo/christmas-fun/game/story"
	"github.com/wricardo/christmas-fun/game/tracker"
	"github.com/wricardo/christmas-fun/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	karaoke service.KaraokeService
	hub     *websocket.Hub
	router  *mux.Router

	spirit    *spirit.Generator
	tracker   *tracker.Tracker
	content   fs.FS
	static    fs.FS
	publicURL string
	logger    *slog.Logger
}

// Option configures a Server
type Option func(*Server)

// WithSpirit sets the festive content generator
func WithSpirit(g *spirit.Generator) Option {
	return func(s *Server) { s.spirit = g }
}

// WithTracker enables the /api/santa endpoints
func WithTracker(t *tracker.Tracker) Option {
	return func(s *Server) { s.tracker = t }
}

// WithContent sets where story files are read from
func WithContent(fsys fs.FS) Option {
	return func(s *Server) { s.content = fsys }
}

// WithStatic serves fsys at the root path
func WithStatic(fsys fs.FS) Option {
	return func(s *Server) { s.static = fsys }
}

// WithPublicURL sets the base URL encoded in join QR codes. Without it the
// request host is used.
func WithPublicURL(u string) Option {
	return func(s *Server) { s.publicURL = u }
}

// WithLogger sets the request logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server
func NewServer(karaoke service.KaraokeService, hub *websocket.Hub, opts ...Option) *Server {
	s := &Server{
		karaoke: karaoke,
		hub:     hub,
		router:  mux.NewRouter(),
		spirit:  &spirit.Generator{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("", s.handleIndex).Methods("GET")
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Catalog
	api.HandleFunc("/carols", s.handleListCarols).Methods("GET")
	api.HandleFunc("/carols/{id}", s.handleGetCarol).Methods("GET")

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Karaoke operations
	api.HandleFunc("/sessions/{id}/select", s.handleSelect).Methods("POST")
	api.HandleFunc("/sessions/{id}/start", s.handleStart).Methods("POST")
	api.HandleFunc("/sessions/{id}/pause", s.handlePause).Methods("POST")
	api.HandleFunc("/sessions/{id}/reset", s.handleReset).Methods("POST")
	api.HandleFunc("/sessions/{id}/mode", s.handleToggleMode).Methods("POST")
	api.HandleFunc("/sessions/{id}/back", s.handleBack).Methods("POST")
	api.HandleFunc("/sessions/{id}/speed", s.handleSpeed).Methods("POST")
	api.HandleFunc("/sessions/{id}/answer", s.handleAnswer).Methods("POST")
	api.HandleFunc("/sessions/{id}/events", s.handleEvents).Methods("GET")
	api.HandleFunc("/sessions/{id}/qr", s.handleQRCode).Methods("GET")

	// Festive utilities
	api.HandleFunc("/spirit/joke", s.handleJoke).Methods("GET")
	api.HandleFunc("/spirit/trivia", s.handleTrivia).Methods("GET")
	api.HandleFunc("/spirit/activity", s.handleActivity).Methods("GET")
	api.HandleFunc("/spirit/countdown", s.handleCountdown).Methods("GET")
	api.HandleFunc("/spirit/message", s.handleHolidayMessage).Methods("GET")
	api.HandleFunc("/spirit/naughty-or-nice", s.handleNaughtyOrNice).Methods("POST")

	// Story
	api.HandleFunc("/story", s.handleStoryLanguages).Methods("GET")
	api.HandleFunc("/story/{lang}", s.handleStory).Methods("GET")
	api.HandleFunc("/art/{name}", s.handleArt).Methods("GET")

	// Santa tracker
	api.HandleFunc("/santa/journey", s.withTracker(s.handleSantaJourney)).Methods("GET")
	api.HandleFunc("/santa/state", s.withTracker(s.handleSantaState)).Methods("GET")
	api.HandleFunc("/santa/location", s.withTracker(s.handleSantaLocation)).Methods("GET")
	api.HandleFunc("/santa/start", s.withTracker(s.handleSantaStart)).Methods("POST")
	api.HandleFunc("/santa/pause", s.withTracker(s.handleSantaPause)).Methods("POST")
	api.HandleFunc("/santa/reset", s.withTracker(s.handleSantaReset)).Methods("POST")
	api.HandleFunc("/santa/speed", s.withTracker(s.handleSantaSpeed)).Methods("POST")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	if s.static != nil {
		s.router.PathPrefix("/").Handler(http.FileServer(http.FS(s.static)))
	}
}

// Router exposes the mux so callers can mount extra handlers such as /mcp
func (s *Server) Router() *mux.Router {
	return s.router
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, engine.ErrCarolNotFound),
		errors.Is(err, config.ErrContentNotFound),
		errors.Is(err, story.ErrStoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidTransition),
		errors.Is(err, engine.ErrNotAwaitingAnswer),
		errors.Is(err, engine.ErrNoSession),
		errors.Is(err, service.ErrSessionExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, engine.ErrInvalidSpeed),
		errors.Is(err, session.ErrInvalidSessionID),
		errors.Is(err, spirit.ErrUnknownMood),
		errors.Is(err, tracker.ErrInvalidSpeed):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	respondError(w, status, err.Error())
}

// decodeBody decodes an optional JSON body into v
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid request body: %v", service.ErrInvalidRequest, err)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"name": "christmas-fun",
		"endpoints": map[string][]string{
			"carols":   {"GET /api/carols", "GET /api/carols/{id}"},
			"sessions": {"POST /api/sessions", "GET /api/sessions", "GET /api/sessions/{id}", "DELETE /api/sessions/{id}"},
			"karaoke": {
				"POST /api/sessions/{id}/select", "POST /api/sessions/{id}/start", "POST /api/sessions/{id}/pause",
				"POST /api/sessions/{id}/reset", "POST /api/sessions/{id}/mode", "POST /api/sessions/{id}/back",
				"POST /api/sessions/{id}/speed", "POST /api/sessions/{id}/answer",
				"GET /api/sessions/{id}/events", "GET /api/sessions/{id}/qr",
			},
			"spirit": {
				"GET /api/spirit/joke", "GET /api/spirit/trivia", "GET /api/spirit/activity",
				"GET /api/spirit/countdown", "GET /api/spirit/message", "POST /api/spirit/naughty-or-nice",
			},
			"story": {"GET /api/story", "GET /api/story/{lang}", "GET /api/art/{name}"},
			"santa": {
				"GET /api/santa/journey", "GET /api/santa/state", "GET /api/santa/location",
				"POST /api/santa/start", "POST /api/santa/pause", "POST /api/santa/reset", "POST /api/santa/speed",
			},
			"websocket": {"GET /ws?session={id}", "GET /ws?channel=santa"},
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
