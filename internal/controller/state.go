package controller

import (
	"slices"

	"github.com/vytor/wordcards/internal/flashcard"
	"github.com/vytor/wordcards/internal/models"
	"github.com/vytor/wordcards/internal/speech"
)

// Phase is the session half of the controller's state machine.
type Phase string

const (
	PhaseUnauthenticated Phase = "unauthenticated"
	PhaseAuthenticating  Phase = "authenticating"
	PhaseAuthenticated   Phase = "authenticated"
)

// Confirmation is a destructive action waiting for the user to confirm it.
type Confirmation struct {
	Action   string `json:"action"`
	Prompt   string `json:"prompt"`
	TargetID int64  `json:"targetId"`
}

const (
	ActionDeleteCard  = "delete-card"
	ActionDeleteGroup = "delete-group"
)

const maxNotifications = 20

// State is everything one browser client sees. It is only touched with
// the controller's mutex held.
type State struct {
	Session   *models.User `json:"session"`
	Phase     Phase        `json:"phase"`
	ActiveTab models.Tab   `json:"activeTab"`

	Cards      []models.WordCard    `json:"cards"`
	AllCards   []models.WordCard    `json:"allCards"`
	Categories []models.Category    `json:"categories"`
	Groups     []models.Group       `json:"groups"`
	Accounts   []models.UserAccount `json:"accounts"`

	NewCard     models.CardDraft     `json:"newCard"`
	NewCategory models.CategoryDraft `json:"newCategory"`
	NewGroup    models.GroupDraft    `json:"newGroup"`
	Editing     *models.CardDraft    `json:"editing"`

	SearchQuery        string         `json:"searchQuery"`
	SelectedCategoryID *int64         `json:"selectedCategoryId"`
	SelectedGroupID    *int64         `json:"selectedGroupId"`
	SelectedCourse     *int           `json:"selectedCourse"`
	SortBy             models.SortKey `json:"sortBy"`

	ShowAddCardsDialog bool           `json:"showAddCardsDialog"`
	DialogGroupID      *int64         `json:"dialogGroupId"`
	DialogSearchQuery  string         `json:"dialogSearchQuery"`
	DialogCourse       *int           `json:"dialogCourse"`
	DialogSortBy       models.SortKey `json:"dialogSortBy"`
	SelectedCardIDs    []int64        `json:"selectedCardIds"`

	CurrentCardIndex int  `json:"currentCardIndex"`
	IsFlipped        bool `json:"isFlipped"`
	IsShuffled       bool `json:"isShuffled"`
	IsTranslating    bool `json:"isTranslating"`

	Pending       *Confirmation         `json:"pending"`
	Notifications []models.Notification `json:"notifications"`
}

func initialState() State {
	return State{
		Phase:       PhaseUnauthenticated,
		ActiveTab:   models.TabCards,
		NewCategory: models.DefaultCategoryDraft(),
		NewGroup:    models.DefaultGroupDraft(),
	}
}

func (s State) IsAdmin() bool {
	return s.Session != nil && s.Session.IsAdmin
}

// HasCards separates the empty-state view from the study views.
func (s State) HasCards() bool {
	return len(s.Cards) > 0
}

// CurrentCard returns the card under CurrentCardIndex.
func (s State) CurrentCard() (models.WordCard, bool) {
	if s.CurrentCardIndex < 0 || s.CurrentCardIndex >= len(s.Cards) {
		return models.WordCard{}, false
	}
	return s.Cards[s.CurrentCardIndex], true
}

func (s State) IsSelected(cardID int64) bool {
	return slices.Contains(s.SelectedCardIDs, cardID)
}

func (s State) filter() flashcard.Filter {
	return flashcard.Filter{
		Query:      s.SearchQuery,
		CategoryID: s.SelectedCategoryID,
		Course:     s.SelectedCourse,
		SortBy:     s.SortBy,
	}
}

func (s State) dialogFilter() flashcard.Filter {
	return flashcard.Filter{
		Query:  s.DialogSearchQuery,
		Course: s.DialogCourse,
		SortBy: s.DialogSortBy,
	}
}

// clone copies the state deeply enough that callers can read it without
// the controller's lock.
func (s State) clone() State {
	out := s
	out.Session = clonePtr(s.Session)
	out.Cards = slices.Clone(s.Cards)
	out.AllCards = slices.Clone(s.AllCards)
	out.Categories = slices.Clone(s.Categories)
	out.Groups = slices.Clone(s.Groups)
	out.Accounts = slices.Clone(s.Accounts)
	out.Editing = clonePtr(s.Editing)
	out.SelectedCategoryID = clonePtr(s.SelectedCategoryID)
	out.SelectedGroupID = clonePtr(s.SelectedGroupID)
	out.SelectedCourse = clonePtr(s.SelectedCourse)
	out.DialogGroupID = clonePtr(s.DialogGroupID)
	out.DialogCourse = clonePtr(s.DialogCourse)
	out.SelectedCardIDs = slices.Clone(s.SelectedCardIDs)
	out.Pending = clonePtr(s.Pending)
	out.Notifications = slices.Clone(s.Notifications)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// View is a read-only snapshot plus everything derived from it.
type View struct {
	State

	CurrentCard      *models.WordCard         `json:"currentCard"`
	FilteredCards    []models.WordCard        `json:"filteredCards"`
	DialogCards      []models.WordCard        `json:"dialogCards"`
	Progress         flashcard.Summary        `json:"progress"`
	CategoryProgress []flashcard.CategoryStat `json:"categoryProgress"`
	Utterance        *speech.Utterance        `json:"utterance,omitempty"`
}

func newView(s State) View {
	v := View{
		State:         s,
		FilteredCards: flashcard.DeriveFilteredCards(s.Cards, s.filter()),
		Progress:      flashcard.Summarize(s.Cards),
	}
	if card, ok := s.CurrentCard(); ok {
		v.CurrentCard = &card
	}
	if s.ShowAddCardsDialog {
		v.DialogCards = flashcard.DeriveFilteredCards(s.AllCards, s.dialogFilter())
	}
	if !s.IsAdmin() {
		v.CategoryProgress = flashcard.CategoryProgress(s.Cards, s.Categories)
	}
	return v
}
