package api

import (
	"net/http"

	"github.com/vytor/wordcards/internal/controller"
	"github.com/vytor/wordcards/internal/models"
)

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFromContext(r.Context())
	ctrl.SetTab(models.TabProgress)
	if ctrl.Snapshot().IsAdmin() {
		ctrl.LoadAccounts(r.Context())
	}
	s.render(w, r, "progress.html", models.TabProgress, func(v controller.View) any {
		return newProgressPage(v)
	})
}

// handleState returns the full view model as JSON.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, controllerFromContext(r.Context()).View())
}
