package api

import (
	"net/http"

	"github.com/vytor/wordcards/internal/controller"
	"github.com/vytor/wordcards/internal/logger"
	"github.com/vytor/wordcards/internal/models"
)

func (s *Server) handleAuthPage(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFromContext(r.Context())
	if ctrl.SignedIn() {
		redirect(w, r, "/")
		return
	}
	mode := models.ParseAuthMode(r.URL.Query().Get("mode"))
	s.render(w, r, "auth.html", "", func(controller.View) any {
		return authPage{Mode: mode}
	})
}

func (s *Server) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	ctrl := controllerFromContext(r.Context())
	mode := models.ParseAuthMode(r.FormValue("mode"))

	ctrl.Authenticate(r.Context(), mode, r.FormValue("username"), r.FormValue("password"))
	if !ctrl.SignedIn() {
		log.Debug("%s did not establish a session", mode)
		redirect(w, r, "/auth?mode="+string(mode))
		return
	}
	redirect(w, r, "/")
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	controllerFromContext(r.Context()).Logout(r.Context())
	redirect(w, r, "/auth")
}
