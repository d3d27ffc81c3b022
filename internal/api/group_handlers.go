package api

import (
	"net/http"

	"github.com/vytor/wordcards/internal/controller"
	apperrors "github.com/vytor/wordcards/internal/errors"
	"github.com/vytor/wordcards/internal/models"
)

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	controllerFromContext(r.Context()).SetTab(models.TabGroups)
	s.render(w, r, "groups.html", models.TabGroups, func(v controller.View) any {
		return newGroupsPage(v)
	})
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFromContext(r.Context())
	ctrl.SetNewGroup(models.GroupDraft{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Color:       r.FormValue("color"),
		Course:      optionalCourse(r, "course"),
	})
	ctrl.CreateGroup(r.Context())
	redirect(w, r, "/groups")
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	ctrl := controllerFromContext(r.Context())
	ctrl.DeleteGroup(r.Context(), id, formConfirmer(r))
	if pendingFor(ctrl, controller.ActionDeleteGroup, id) && isAPIRequest(r) {
		handleError(w, r, apperrors.NewConfirmationRequiredError("deleting a group"))
		return
	}
	redirect(w, r, "/groups")
}

func (s *Server) handleOpenGroupDialog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	controllerFromContext(r.Context()).OpenAddCardsDialog(r.Context(), id)
	redirect(w, r, "/groups")
}

// handleGroupDialog applies the dialog's filter and selection form. The
// op field picks what the submit button does.
func (s *Server) handleGroupDialog(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		handleError(w, r, apperrors.NewBadRequestError("invalid form"))
		return
	}
	ctrl := controllerFromContext(r.Context())
	ctrl.SetDialogFilter(r.FormValue("q"), optionalCourse(r, "course"), models.ParseSortKey(r.FormValue("sort")))

	switch r.FormValue("op") {
	case "select-all":
		ctrl.SelectAllDialogCards()
	case "clear":
		ctrl.ClearSelection()
	case "toggle":
		if id := optionalID(r, "card_id"); id != nil {
			ctrl.ToggleCardSelection(*id)
		}
	default:
		if _, ok := r.Form["card_ids"]; ok {
			ctrl.SetSelection(idList(r.Form["card_ids"]))
		}
	}
	redirect(w, r, "/groups")
}

func (s *Server) handleCloseGroupDialog(w http.ResponseWriter, r *http.Request) {
	controllerFromContext(r.Context()).CloseAddCardsDialog()
	redirect(w, r, "/groups")
}

func (s *Server) handleAddCardsToGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		handleError(w, r, apperrors.NewBadRequestError("invalid form"))
		return
	}
	ctrl := controllerFromContext(r.Context())
	if ids, ok := r.Form["card_ids"]; ok {
		ctrl.SetSelection(idList(ids))
	}
	ctrl.AddCardsToGroup(r.Context(), id)
	redirect(w, r, "/groups")
}
