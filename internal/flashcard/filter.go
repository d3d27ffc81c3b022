// Package flashcard holds the pure, side-effect-free views derived from the
// card collections: filtering, sorting, navigation arithmetic, shuffling and
// progress summaries.
package flashcard

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vytor/wordcards/internal/models"
)

// Filter selects and orders cards. Nil or zero CategoryID and nil Course
// disable the respective equality filter.
type Filter struct {
	Query      string
	CategoryID *int64
	Course     *int
	SortBy     models.SortKey
}

// DeriveFilteredCards returns the cards whose russian or english text contains
// the query (case-insensitively) and which pass the category and course
// filters, stably sorted by f.SortBy. The input slice is never modified.
func DeriveFilteredCards(cards []models.WordCard, f Filter) []models.WordCard {
	query := strings.ToLower(f.Query)
	out := make([]models.WordCard, 0, len(cards))
	for _, card := range cards {
		if !Matches(card, query) {
			continue
		}
		if f.CategoryID != nil && *f.CategoryID != 0 && card.CategoryID != *f.CategoryID {
			continue
		}
		if f.Course != nil && card.CourseOrDefault() != *f.Course {
			continue
		}
		out = append(out, card)
	}
	SortCards(out, f.SortBy)
	return out
}

// Matches reports whether a lowercased query is a substring of the card's
// russian or english text.
func Matches(card models.WordCard, lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(card.Russian), lowerQuery) ||
		strings.Contains(strings.ToLower(card.English), lowerQuery)
}

// SortCards sorts cards in place. Text keys use a russian collation so
// Cyrillic and Latin words both order naturally; an absent course counts
// as course 1. SortNone keeps the server order.
func SortCards(cards []models.WordCard, key models.SortKey) {
	switch key {
	case models.SortCourse:
		slices.SortStableFunc(cards, func(a, b models.WordCard) int {
			return a.CourseOrDefault() - b.CourseOrDefault()
		})
	case models.SortRussian:
		col := newCollator()
		slices.SortStableFunc(cards, func(a, b models.WordCard) int {
			return col.CompareString(a.Russian, b.Russian)
		})
	case models.SortEnglish:
		col := newCollator()
		slices.SortStableFunc(cards, func(a, b models.WordCard) int {
			return col.CompareString(a.English, b.English)
		})
	case models.SortCategory:
		col := newCollator()
		slices.SortStableFunc(cards, func(a, b models.WordCard) int {
			return col.CompareString(a.CategoryName, b.CategoryName)
		})
	}
}

// collate.Collator keeps internal buffers, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Russian, collate.IgnoreCase)
}
