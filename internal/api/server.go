// Package api is the HTML front end. Every browser client is identified by
// a signed cookie and owns one controller; handlers translate form posts
// into controller operations and render typed page models built from its
// snapshots.
package api

import (
	"database/sql"
	"html/template"
	"net/http"
	"time"

	"github.com/vytor/wordcards/internal/controller"
	"github.com/vytor/wordcards/internal/logger"
	"github.com/vytor/wordcards/internal/models"
)

type Server struct {
	Registry       *controller.Registry
	Cookies        *ClientCookies
	Templates      *template.Template
	DB             *sql.DB
	HandlerTimeout time.Duration
	MaxUploadBytes int64
}

type pageData struct {
	Layout layout
	Page   any
}

// render shows a page built from the controller's current view and drains
// its notifications into the layout.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, tab models.Tab, build func(controller.View) any) {
	ctrl := controllerFromContext(r.Context())
	view := ctrl.View()
	data := pageData{
		Layout: newLayout(view, tab, ctrl.TakeNotifications()),
		Page:   build(view),
	}

	log := logger.FromContext(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// redirect finishes a form post with a 303 so a reload does not repeat it.
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}
