package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/zeusync/steering/internal/core/observability/log"
	"github.com/zeusync/steering/internal/core/physics"
	"github.com/zeusync/steering/internal/core/sim"
	"github.com/zeusync/steering/internal/core/steering"
)

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /snapshot", s.handleSnapshot)
	mux.Handle("POST /agents/{agent}/target", s.requireToken(http.HandlerFunc(s.handleSetTarget)))
	mux.Handle("POST /agents/{agent}/behavior", s.requireToken(http.HandlerFunc(s.handleSetBehavior)))
	return mux
}

type targetRequest struct {
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Follow string   `json:"follow,omitempty"`
}

type behaviorRequest struct {
	Kind steering.Kind `json:"kind"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.world.Snapshot())
}

func (s *Server) handleSetTarget(w http.ResponseWriter, r *http.Request) {
	id, ok := s.resolveAgent(w, r)
	if !ok {
		return
	}

	var req targetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var err error
	switch {
	case req.Follow != "":
		other, found := s.world.Lookup(req.Follow)
		if !found {
			other = sim.ID(req.Follow)
		}
		err = s.world.FollowAgent(id, other)
	case req.X != nil && req.Y != nil:
		err = s.world.SetTargetPoint(id, physics.V(*req.X, *req.Y))
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "either x and y or follow is required"})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	s.logger.Debug("target updated", log.String("agent", string(id)))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetBehavior(w http.ResponseWriter, r *http.Request) {
	id, ok := s.resolveAgent(w, r)
	if !ok {
		return
	}

	var req behaviorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := s.world.SetBehavior(id, req.Kind); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// resolveAgent accepts either an agent name or its ID in the path.
func (s *Server) resolveAgent(w http.ResponseWriter, r *http.Request) (sim.ID, bool) {
	ref := r.PathValue("agent")
	if id, ok := s.world.Lookup(ref); ok {
		return id, true
	}
	for _, a := range s.world.Snapshot().Agents {
		if string(a.ID) == ref {
			return a.ID, true
		}
	}
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "agent not found: " + ref})
	return "", false
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.config.ControlToken != "" {
			token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(token), []byte(s.config.ControlToken)) != 1 {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid control token"})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, sim.ErrAgentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, sim.ErrInvalidAgent), errors.Is(err, steering.ErrUnknownKind), errors.Is(err, steering.ErrInvalidParams):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
