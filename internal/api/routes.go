package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	if s.HandlerTimeout > 0 {
		r.Use(timeoutMiddleware(s.HandlerTimeout))
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Group(func(r chi.Router) {
		r.Use(s.clientMiddleware)

		r.Get("/auth", s.handleAuthPage)
		r.Post("/auth", s.handleAuthenticate)
		r.Post("/logout", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(requireSession)

			r.Get("/", s.handleCards)
			r.Post("/study/next", s.handleNext)
			r.Post("/study/previous", s.handlePrevious)
			r.Post("/study/flip", s.handleFlip)
			r.Post("/study/shuffle", s.handleShuffle)
			r.Post("/study/learned", s.handleMarkLearned)
			r.Post("/study/group", s.handleSelectGroup)

			r.Get("/dictionary", s.handleDictionary)
			r.Post("/dictionary/filter", s.handleDictionaryFilter)

			r.Post("/cards", s.handleAddCard)
			r.Post("/cards/translate", s.handleTranslate)
			r.Post("/cards/{id}/select", s.handleSelectCard)
			r.Get("/cards/{id}/edit", s.handleEditPage)
			r.Post("/cards/{id}/edit", s.handleEditCard)
			r.Post("/cards/edit/cancel", s.handleCancelEdit)
			r.Post("/cards/edit/translate", s.handleTranslateEditing)
			r.Post("/cards/{id}/delete", s.handleDeleteCard)

			r.Get("/categories", s.handleCategories)
			r.Post("/categories", s.handleAddCategory)

			r.Get("/groups", s.handleGroups)

			r.Get("/progress", s.handleProgress)
			r.Post("/confirm/dismiss", s.handleDismissConfirmation)

			r.Get("/api/state", s.handleState)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/groups", s.handleCreateGroup)
				r.Post("/groups/{id}/delete", s.handleDeleteGroup)
				r.Post("/groups/{id}/open", s.handleOpenGroupDialog)
				r.Post("/groups/dialog", s.handleGroupDialog)
				r.Post("/groups/dialog/close", s.handleCloseGroupDialog)
				r.Post("/groups/{id}/cards", s.handleAddCardsToGroup)
				r.Get("/cards/export.xlsx", s.handleExport)
				r.Post("/cards/import", s.handleImport)
			})
		})
	})

	return r
}
