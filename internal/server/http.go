package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Status summarizes the session served by a Server
type Status struct {
	Things  int  `json:"things"`
	Errors  int  `json:"errors"`
	Done    bool `json:"done"`
	Clients int  `json:"clients"`
}

// Status returns a snapshot of the session counters
func (s *Server) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Things:  len(s.things),
		Errors:  s.errCount,
		Done:    s.done,
		Clients: len(s.clients),
	}
}

// handleThings writes every Thing found so far as a JSON array
func (s *Server) handleThings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	things := make([]json.RawMessage, len(s.things))
	copy(things, s.things)
	s.mu.Unlock()

	s.writeJSON(w, r, things)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, s.Status())
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("Failed to write response",
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
	}
}
