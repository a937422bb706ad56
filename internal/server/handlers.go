package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/theirongolddev/tripcost/internal/model"
	"github.com/theirongolddev/tripcost/internal/pipeline"
	"github.com/theirongolddev/tripcost/internal/state"

	"github.com/go-chi/chi/v5"
)

// PlanResponse is served at /v1/plan and returned by every mutation.
type PlanResponse struct {
	State         state.State             `json:"state"`
	Plan          model.PlanOutput        `json:"plan"`
	Affordability model.Affordability     `json:"affordability"`
	Refresh       *pipeline.RefreshReport `json:"refresh,omitempty"`
}

// CountryPatch is the body of PATCH /v1/countries/{index}.
// Absent fields are left unchanged.
type CountryPatch struct {
	Months     *int     `json:"months,omitempty"`
	Multiplier *float64 `json:"multiplier,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newPlanResponse(st state.State) PlanResponse {
	plan := st.Plan()
	return PlanResponse{
		State:         st,
		Plan:          plan,
		Affordability: pipeline.Affordability(plan, st.Inputs),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Server) handlePlan(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, newPlanResponse(s.State()))
}

func (s *Server) handlePutInputs(w http.ResponseWriter, r *http.Request) {
	var in model.Inputs
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid inputs: %v", err))
		return
	}

	next := s.replace(EventInputs, func(st state.State) state.State {
		return st.WithInputs(in)
	})
	writeJSON(w, http.StatusOK, newPlanResponse(next))
}

func (s *Server) handlePatchCountry(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || idx < 0 || idx >= s.State().Len() {
		writeError(w, http.StatusNotFound, "no country at index "+chi.URLParam(r, "index"))
		return
	}

	var patch CountryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid patch: %v", err))
		return
	}

	next := s.replace(EventCountry, func(st state.State) state.State {
		if patch.Months != nil {
			st = st.WithMonths(idx, *patch.Months)
		}
		if patch.Multiplier != nil {
			st = st.WithMultiplier(idx, *patch.Multiplier)
		}
		return st
	})
	writeJSON(w, http.StatusOK, newPlanResponse(next))
}

func (s *Server) handleRefreshMultipliers(w http.ResponseWriter, r *http.Request) {
	next, report, ok := s.refreshMultipliers(r.Context())
	if !ok {
		writeError(w, http.StatusConflict, "multiplier refresh already in progress")
		return
	}

	resp := newPlanResponse(next)
	resp.Refresh = &report
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.State().Rates)
}

func (s *Server) handleRefreshRates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.refreshRates(r.Context()))
}

func (s *Server) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current totals immediately.
	writeSSE(w, Event{
		Type:      EventSnapshot,
		Timestamp: time.Now(),
		Totals:    s.State().Plan().Totals,
	})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
