package api

import (
	"net/http"
	"strings"

	"github.com/vytor/wordcards/internal/controller"
	apperrors "github.com/vytor/wordcards/internal/errors"
	"github.com/vytor/wordcards/internal/models"
)

func (s *Server) handleDictionary(w http.ResponseWriter, r *http.Request) {
	controllerFromContext(r.Context()).SetTab(models.TabDictionary)
	s.render(w, r, "dictionary.html", models.TabDictionary, func(v controller.View) any {
		return newDictionaryPage(v)
	})
}

func (s *Server) handleDictionaryFilter(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFromContext(r.Context())
	ctrl.SetSearch(strings.TrimSpace(r.FormValue("q")))
	ctrl.SetCategoryFilter(optionalID(r, "category_id"))
	ctrl.SetCourseFilter(optionalCourse(r, "course"))
	ctrl.SetSort(models.ParseSortKey(r.FormValue("sort")))
	redirect(w, r, "/dictionary")
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFromContext(r.Context())
	ctrl.SetNewCard(cardDraftFromForm(r))
	ctrl.AddCard(r.Context())
	redirect(w, r, backTo(r, "/dictionary"))
}

// handleTranslate keeps what the user typed and fills in the english side.
func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFromContext(r.Context())
	ctrl.SetNewCard(cardDraftFromForm(r))
	ctrl.Translate(r.Context())
	redirect(w, r, backTo(r, "/dictionary"))
}

func (s *Server) handleEditPage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	ctrl := controllerFromContext(r.Context())
	if editing := ctrl.Snapshot().Editing; editing == nil || editing.ID != id {
		ctrl.BeginEdit(id)
	}
	page, ok := newEditPage(ctrl.View())
	if !ok {
		redirect(w, r, "/dictionary")
		return
	}
	s.render(w, r, "edit.html", models.TabDictionary, func(controller.View) any {
		return page
	})
}

func (s *Server) handleEditCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	ctrl := controllerFromContext(r.Context())
	if editing := ctrl.Snapshot().Editing; editing == nil || editing.ID != id {
		ctrl.BeginEdit(id)
	}
	ctrl.SetEditing(cardDraftFromForm(r))
	ctrl.EditCard(r.Context())

	if ctrl.Snapshot().Editing != nil {
		redirect(w, r, r.URL.Path)
		return
	}
	redirect(w, r, "/dictionary")
}

func (s *Server) handleCancelEdit(w http.ResponseWriter, r *http.Request) {
	controllerFromContext(r.Context()).CancelEdit()
	redirect(w, r, "/dictionary")
}

func (s *Server) handleTranslateEditing(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFromContext(r.Context())
	ctrl.SetEditing(cardDraftFromForm(r))
	ctrl.TranslateEditing(r.Context())
	if editing := ctrl.Snapshot().Editing; editing != nil {
		redirect(w, r, "/cards/"+itoa(editing.ID)+"/edit")
		return
	}
	redirect(w, r, "/dictionary")
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	ctrl := controllerFromContext(r.Context())
	ctrl.DeleteCard(r.Context(), id, formConfirmer(r))
	if pendingFor(ctrl, controller.ActionDeleteCard, id) && isAPIRequest(r) {
		handleError(w, r, apperrors.NewConfirmationRequiredError("deleting a card"))
		return
	}
	redirect(w, r, backTo(r, "/dictionary"))
}

func pendingFor(ctrl *controller.Controller, action string, id int64) bool {
	p := ctrl.Snapshot().Pending
	return p != nil && p.Action == action && p.TargetID == id
}
