package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/wordcards/internal/controller"
	apperrors "github.com/vytor/wordcards/internal/errors"
	"github.com/vytor/wordcards/internal/models"
)

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequestError("invalid id: " + raw)
	}
	return id, nil
}

// optionalID parses a positive id form field. Empty, zero and malformed
// values mean "none".
func optionalID(r *http.Request, key string) *int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(r.FormValue(key)), 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

func optionalCourse(r *http.Request, key string) *int {
	c, err := strconv.Atoi(strings.TrimSpace(r.FormValue(key)))
	if err != nil || c <= 0 {
		return nil
	}
	return &c
}

func idList(values []string) []int64 {
	out := make([]int64, 0, len(values))
	for _, v := range values {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			out = append(out, id)
		}
	}
	return out
}

func cardDraftFromForm(r *http.Request) models.CardDraft {
	d := models.CardDraft{
		Russian:        r.FormValue("russian"),
		RussianExample: r.FormValue("russian_example"),
		English:        r.FormValue("english"),
		EnglishExample: r.FormValue("english_example"),
		Course:         optionalCourse(r, "course"),
	}
	if id := optionalID(r, "category_id"); id != nil {
		d.CategoryID = *id
	}
	return d
}

// formConfirmer approves destructive actions posted with confirm=yes.
func formConfirmer(r *http.Request) controller.Confirmer {
	return controller.ConfirmFunc(func(string) bool {
		return r.FormValue("confirm") == "yes"
	})
}

// backTo returns the local page a form asked to return to. Anything a
// browser could resolve to another origin falls back.
func backTo(r *http.Request, fallback string) string {
	ret := r.FormValue("return")
	if !isLocalPath(ret) {
		return fallback
	}
	return ret
}

func isLocalPath(p string) bool {
	if !strings.HasPrefix(p, "/") || strings.ContainsAny(p, "\\\r\n\t") {
		return false
	}
	u, err := url.Parse(p)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == "" && u.User == nil && strings.HasPrefix(u.Path, "/") && !strings.HasPrefix(u.Path, "//")
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
