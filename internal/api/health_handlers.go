package api

import (
	"context"
	"net/http"
	"time"

	"github.com/vytor/wordcards/internal/logger"
)

const readyTimeout = 2 * time.Second

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("OK"))
}

// handleReady reports whether the session store answers. It also reports
// how many browser clients currently hold a controller in memory.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	clients := 0
	if s.Registry != nil {
		clients = s.Registry.Len()
	}
	w.Header().Set("X-Active-Clients", itoa(int64(clients)))

	if err := s.pingStore(r.Context()); err != nil {
		logger.FromContext(r.Context()).Warn("session store unavailable: %v", err)
		http.Error(w, "Session store unavailable", http.StatusServiceUnavailable)
		return
	}
	_, _ = w.Write([]byte("Ready"))
}

func (s *Server) pingStore(ctx context.Context) error {
	if s.DB == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()
	return s.DB.PingContext(ctx)
}
