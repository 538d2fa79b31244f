package api

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/skip2/go-qrcode"

	"github.com/wricardo/christmas-fun/game/service"
	"github.com/wricardo/christmas-fun/transport/websocket"
)

// Catalog Handlers

func (s *Server) handleListCarols(w http.ResponseWriter, r *http.Request) {
	carols, err := s.karaoke.ListCarols(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(carols),
		"carols": carols,
	})
}

func (s *Server) handleGetCarol(w http.ResponseWriter, r *http.Request) {
	carol, err := s.karaoke.GetCarol(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, carol)
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req service.CreateSessionRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	info, err := s.karaoke.CreateSession(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.karaoke.ListSessions(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort") // "created" or "accessed" (default)
	order := query.Get("order") // "asc" or "desc" (default)
	if sortBy != "created" {
		sortBy = "accessed"
	}
	if order != "asc" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		ti, tj := sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		}
		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	total := len(sessions)
	if l, err := strconv.Atoi(query.Get("limit")); err == nil && l > 0 && l < len(sessions) {
		sessions = sessions[:l]
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	info, err := s.karaoke.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	if err := s.karaoke.DeleteSession(r.Context(), sessionID); err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Karaoke Operation Handlers

type sessionAction func(svc service.KaraokeService, r *http.Request, id string) (*service.SessionInfo, error)

func (s *Server) runAction(w http.ResponseWriter, r *http.Request, action sessionAction) {
	info, err := action(s.karaoke, r, mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req service.SelectRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	s.runAction(w, r, func(svc service.KaraokeService, r *http.Request, id string) (*service.SessionInfo, error) {
		return svc.SelectCarol(r.Context(), id, req)
	})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	s.runAction(w, r, func(svc service.KaraokeService, r *http.Request, id string) (*service.SessionInfo, error) {
		return svc.Start(r.Context(), id)
	})
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.runAction(w, r, func(svc service.KaraokeService, r *http.Request, id string) (*service.SessionInfo, error) {
		return svc.Pause(r.Context(), id)
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.runAction(w, r, func(svc service.KaraokeService, r *http.Request, id string) (*service.SessionInfo, error) {
		return svc.Reset(r.Context(), id)
	})
}

func (s *Server) handleToggleMode(w http.ResponseWriter, r *http.Request) {
	s.runAction(w, r, func(svc service.KaraokeService, r *http.Request, id string) (*service.SessionInfo, error) {
		return svc.ToggleMode(r.Context(), id)
	})
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	s.runAction(w, r, func(svc service.KaraokeService, r *http.Request, id string) (*service.SessionInfo, error) {
		return svc.Back(r.Context(), id)
	})
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed float64 `json:"speed"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	s.runAction(w, r, func(svc service.KaraokeService, r *http.Request, id string) (*service.SessionInfo, error) {
		return svc.SetSpeed(r.Context(), id, req.Speed)
	})
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answer string `json:"answer"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	result, err := s.karaoke.SubmitAnswer(r.Context(), mux.Vars(r)["id"], req.Answer)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	opts := service.EventOptions{Page: 1, Order: "asc"}

	query := r.URL.Query()
	if p, err := strconv.Atoi(query.Get("page")); err == nil && p > 0 {
		opts.Page = p
	}
	if l, err := strconv.Atoi(query.Get("limit")); err == nil && l > 0 {
		opts.Limit = l
	}
	if since, err := strconv.Atoi(query.Get("since")); err == nil && since > 0 {
		opts.Since = since
	}
	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	events, err := s.karaoke.GetEvents(r.Context(), mux.Vars(r)["id"], opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// handleQRCode returns a PNG linking to the browser view of the session
func (s *Server) handleQRCode(w http.ResponseWriter, r *http.Request) {
	info, err := s.karaoke.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}

	size := 256
	if v, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && v >= 64 && v <= 1024 {
		size = v
	}

	png, err := qrcode.Encode(s.joinURL(r, info.ID), qrcode.Medium, size)
	if err != nil {
		s.fail(w, r, fmt.Errorf("failed to encode qr code: %w", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (s *Server) joinURL(r *http.Request, sessionID string) string {
	base := strings.TrimSuffix(s.publicURL, "/")
	if base == "" {
		scheme := "http"
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}
	return base + "/?session=" + url.QueryEscape(sessionID)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "websocket hub not configured")
		return
	}

	query := r.URL.Query()
	if query.Get("channel") == websocket.SantaChannel {
		if s.tracker == nil {
			respondError(w, http.StatusNotFound, "santa tracker not configured")
			return
		}
		s.hub.ServeWS(w, r, websocket.SantaChannel, s.santaState())
		return
	}

	sessionID := query.Get("session")
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "session parameter required")
		return
	}

	info, err := s.karaoke.GetSession(r.Context(), sessionID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	// the hub keys clients by canonical id
	s.hub.ServeWS(w, r, info.ID, info)
}
