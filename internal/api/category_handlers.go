package api

import (
	"net/http"

	"github.com/vytor/wordcards/internal/controller"
	"github.com/vytor/wordcards/internal/models"
)

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	controllerFromContext(r.Context()).SetTab(models.TabCategories)
	s.render(w, r, "categories.html", models.TabCategories, func(v controller.View) any {
		return newCategoriesPage(v)
	})
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFromContext(r.Context())
	ctrl.SetNewCategory(models.CategoryDraft{
		Name:  r.FormValue("name"),
		Color: r.FormValue("color"),
	})
	ctrl.AddCategory(r.Context())
	redirect(w, r, "/categories")
}
