package api

import (
	"net/http"

	"github.com/vytor/wordcards/internal/controller"
	"github.com/vytor/wordcards/internal/models"
)

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFromContext(r.Context())
	ctrl.SetTab(models.TabCards)
	s.render(w, r, "cards.html", models.TabCards, func(v controller.View) any {
		return newStudyPage(v)
	})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	controllerFromContext(r.Context()).Next()
	redirect(w, r, "/")
}

func (s *Server) handlePrevious(w http.ResponseWriter, r *http.Request) {
	controllerFromContext(r.Context()).Previous()
	redirect(w, r, "/")
}

func (s *Server) handleFlip(w http.ResponseWriter, r *http.Request) {
	controllerFromContext(r.Context()).Flip()
	redirect(w, r, "/")
}

func (s *Server) handleShuffle(w http.ResponseWriter, r *http.Request) {
	controllerFromContext(r.Context()).Shuffle(r.Context())
	redirect(w, r, "/")
}

// handleMarkLearned toggles the learned flag of the posted card, or of the
// current card when none is posted.
func (s *Server) handleMarkLearned(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFromContext(r.Context())
	var cardID int64
	if id := optionalID(r, "card_id"); id != nil {
		cardID = *id
	} else if card, ok := ctrl.Snapshot().CurrentCard(); ok {
		cardID = card.ID
	}
	if cardID != 0 {
		ctrl.MarkLearned(r.Context(), cardID)
	}
	redirect(w, r, backTo(r, "/"))
}

func (s *Server) handleSelectGroup(w http.ResponseWriter, r *http.Request) {
	controllerFromContext(r.Context()).SelectGroup(r.Context(), optionalID(r, "group_id"))
	redirect(w, r, "/")
}

func (s *Server) handleSelectCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	controllerFromContext(r.Context()).SelectCard(id)
	redirect(w, r, "/")
}

func (s *Server) handleDismissConfirmation(w http.ResponseWriter, r *http.Request) {
	controllerFromContext(r.Context()).DismissConfirmation()
	redirect(w, r, backTo(r, "/"))
}
