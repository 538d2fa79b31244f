package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wricardo/christmas-fun/game/service"
	"github.com/wricardo/christmas-fun/game/spirit"
	"github.com/wricardo/christmas-fun/game/story"
	"github.com/wricardo/christmas-fun/game/tracker"
)

// Spirit Handlers

func (s *Server) handleJoke(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"joke": s.spirit.Joke()})
}

func (s *Server) handleTrivia(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"trivia": s.spirit.Trivia()})
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"activity": s.spirit.Activity()})
}

func (s *Server) handleCountdown(w http.ResponseWriter, r *http.Request) {
	var target *time.Time
	if raw := r.URL.Query().Get("target"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			s.fail(w, r, fmt.Errorf("%w: target must be RFC3339: %v", service.ErrInvalidRequest, err))
			return
		}
		target = &t
	}
	respondJSON(w, http.StatusOK, s.spirit.Countdown(target))
}

func (s *Server) handleHolidayMessage(w http.ResponseWriter, r *http.Request) {
	mood := r.URL.Query().Get("mood")
	msg, err := s.spirit.HolidayMessage(mood)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if mood == "" {
		mood = string(spirit.MoodCheerful)
	}
	respondJSON(w, http.StatusOK, map[string]string{"mood": mood, "message": msg})
}

func (s *Server) handleNaughtyOrNice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}
	respondJSON(w, http.StatusOK, spirit.NaughtyOrNice(req.Text))
}

// Story Handlers

func (s *Server) handleStoryLanguages(w http.ResponseWriter, r *http.Request) {
	if s.content == nil {
		respondError(w, http.StatusNotFound, "story content not configured")
		return
	}
	langs, err := story.Languages(s.content)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"languages": langs})
}

func (s *Server) handleStory(w http.ResponseWriter, r *http.Request) {
	if s.content == nil {
		respondError(w, http.StatusNotFound, "story content not configured")
		return
	}
	lines, lang, err := story.Load(s.content, mux.Vars(r)["lang"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"language": lang,
		"lines":    lines,
	})
}

func (s *Server) handleArt(w http.ResponseWriter, r *http.Request) {
	art, err := story.Art(mux.Vars(r)["name"])
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, art)
}

// Santa Handlers

type santaView struct {
	Stats   tracker.Stats `json:"stats"`
	Current *tracker.Stop `json:"current,omitempty"`
}

func (s *Server) santaState() *santaView {
	st := &santaView{Stats: s.tracker.Stats()}
	if cur, ok := s.tracker.Current(); ok {
		st.Current = &cur
	}
	return st
}

// withTracker rejects santa requests when the tracker is not configured
func (s *Server) withTracker(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.tracker == nil {
			respondError(w, http.StatusNotFound, "santa tracker not configured")
			return
		}
		next(w, r)
	}
}

func (s *Server) handleSantaJourney(w http.ResponseWriter, r *http.Request) {
	stops := s.tracker.Journey()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":       len(stops),
		"distance_km": tracker.RouteDistance(stops, len(stops)),
		"stops":       stops,
	})
}

func (s *Server) handleSantaState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.santaState())
}

func (s *Server) handleSantaLocation(w http.ResponseWriter, r *http.Request) {
	at := time.Now()
	if raw := r.URL.Query().Get("at"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			s.fail(w, r, fmt.Errorf("%w: at must be RFC3339: %v", service.ErrInvalidRequest, err))
			return
		}
		at = t
	}
	respondJSON(w, http.StatusOK, tracker.LocationAt(s.tracker.Journey(), at))
}

func (s *Server) handleSantaStart(w http.ResponseWriter, r *http.Request) {
	s.tracker.Start()
	respondJSON(w, http.StatusOK, s.santaState())
}

func (s *Server) handleSantaPause(w http.ResponseWriter, r *http.Request) {
	s.tracker.Pause()
	respondJSON(w, http.StatusOK, s.santaState())
}

func (s *Server) handleSantaReset(w http.ResponseWriter, r *http.Request) {
	s.tracker.Reset()
	respondJSON(w, http.StatusOK, s.santaState())
}

func (s *Server) handleSantaSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed float64 `json:"speed"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.tracker.SetSpeed(req.Speed); err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, s.santaState())
}
