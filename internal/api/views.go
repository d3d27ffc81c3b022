package api

import (
	"slices"

	"github.com/vytor/wordcards/internal/controller"
	"github.com/vytor/wordcards/internal/flashcard"
	"github.com/vytor/wordcards/internal/models"
	"github.com/vytor/wordcards/internal/speech"
)

// layout is what the page chrome reads: the signed-in user, the active tab,
// toasts, a pending confirmation and the utterance to pronounce.
//
// Intents: POST /logout, POST /cards/{id}/delete and POST /groups/{id}/delete
// with confirm=yes, POST /confirm/dismiss.
type layout struct {
	User          *models.User
	Tab           models.Tab
	Notifications []models.Notification
	Pending       *controller.Confirmation
	Utterance     *speech.Utterance
}

func newLayout(v controller.View, tab models.Tab, notes []models.Notification) layout {
	return layout{
		User:          v.Session,
		Tab:           tab,
		Notifications: notes,
		Pending:       v.Pending,
		Utterance:     v.Utterance,
	}
}

// authPage intents: POST /auth (mode, username, password).
type authPage struct {
	Mode models.AuthMode
}

// studyPage is the card viewer, or the empty state when Card is nil.
//
// Intents: POST /study/next, /study/previous, /study/flip, /study/shuffle,
// /study/learned (card_id), /study/group (group_id).
type studyPage struct {
	Card            *models.WordCard
	Position        int
	Total           int
	Flipped         bool
	Shuffled        bool
	Groups          []models.Group
	SelectedGroupID *int64
	Progress        flashcard.Summary
}

func newStudyPage(v controller.View) studyPage {
	return studyPage{
		Card:            v.CurrentCard,
		Position:        v.CurrentCardIndex + 1,
		Total:           len(v.Cards),
		Flipped:         v.IsFlipped,
		Shuffled:        v.IsShuffled,
		Groups:          v.Groups,
		SelectedGroupID: v.SelectedGroupID,
		Progress:        v.Progress,
	}
}

// dictionaryPage lists the filtered collection with the new-card form.
//
// Intents: POST /cards, /cards/translate, /dictionary/filter,
// /cards/{id}/select, /cards/{id}/delete, /study/learned, GET /cards/{id}/edit;
// admins also GET /cards/export.xlsx and POST /cards/import.
type dictionaryPage struct {
	Form               cardForm
	Cards              []models.WordCard
	Categories         []models.Category
	Query              string
	SelectedCategoryID *int64
	SelectedCourse     *int
	SortBy             models.SortKey
	IsAdmin            bool
}

// cardForm is the shared new/edit card form.
type cardForm struct {
	Draft         models.CardDraft
	Categories    []models.Category
	Courses       []int
	TranslateURL  string
	IsTranslating bool
}

func newDictionaryPage(v controller.View) dictionaryPage {
	return dictionaryPage{
		Form: cardForm{
			Draft:         v.NewCard,
			Categories:    v.Categories,
			Courses:       models.Courses,
			TranslateURL:  "/cards/translate",
			IsTranslating: v.IsTranslating,
		},
		Cards:              v.FilteredCards,
		Categories:         v.Categories,
		Query:              v.SearchQuery,
		SelectedCategoryID: v.SelectedCategoryID,
		SelectedCourse:     v.SelectedCourse,
		SortBy:             v.SortBy,
		IsAdmin:            v.IsAdmin(),
	}
}

// editPage intents: POST /cards/{id}/edit, /cards/edit/translate,
// /cards/edit/cancel.
type editPage struct {
	ID   int64
	Form cardForm
}

func newEditPage(v controller.View) (editPage, bool) {
	if v.Editing == nil {
		return editPage{}, false
	}
	return editPage{
		ID: v.Editing.ID,
		Form: cardForm{
			Draft:         *v.Editing,
			Categories:    v.Categories,
			Courses:       models.Courses,
			TranslateURL:  "/cards/edit/translate",
			IsTranslating: v.IsTranslating,
		},
	}, true
}

// categoriesPage intents: POST /categories (name, color).
type categoriesPage struct {
	Draft      models.CategoryDraft
	Categories []models.Category
	Colors     []models.ColorOption
}

func newCategoriesPage(v controller.View) categoriesPage {
	return categoriesPage{Draft: v.NewCategory, Categories: v.Categories, Colors: models.ColorOptions}
}

// groupsPage lists groups; admins manage them through the add-cards dialog.
//
// Intents: POST /study/group; admins also POST /groups, /groups/{id}/delete,
// /groups/{id}/open, /groups/dialog, /groups/dialog/close,
// /groups/{id}/cards.
type groupsPage struct {
	IsAdmin  bool
	Groups   []models.Group
	NewGroup models.GroupDraft
	Courses  []int
	Dialog   *groupDialog
}

type groupDialog struct {
	GroupID  int64
	Query    string
	Course   *int
	SortBy   models.SortKey
	Cards    []models.WordCard
	Selected []int64
}

func (d groupDialog) IsSelected(cardID int64) bool {
	return slices.Contains(d.Selected, cardID)
}

func newGroupsPage(v controller.View) groupsPage {
	p := groupsPage{
		IsAdmin:  v.IsAdmin(),
		Groups:   v.Groups,
		NewGroup: v.NewGroup,
		Courses:  models.Courses,
	}
	if v.ShowAddCardsDialog && v.DialogGroupID != nil {
		p.Dialog = &groupDialog{
			GroupID:  *v.DialogGroupID,
			Query:    v.DialogSearchQuery,
			Course:   v.DialogCourse,
			SortBy:   v.DialogSortBy,
			Cards:    v.DialogCards,
			Selected: v.SelectedCardIDs,
		}
	}
	return p
}

// progressPage shows the roster to admins and personal progress to users.
// It emits no intents.
type progressPage struct {
	IsAdmin    bool
	Accounts   []models.UserAccount
	Progress   flashcard.Summary
	ByCategory []flashcard.CategoryStat
}

func newProgressPage(v controller.View) progressPage {
	return progressPage{
		IsAdmin:    v.IsAdmin(),
		Accounts:   v.Accounts,
		Progress:   v.Progress,
		ByCategory: v.CategoryProgress,
	}
}
