package controller

import (
	"context"

	"github.com/vytor/wordcards/internal/flashcard"
	"github.com/vytor/wordcards/internal/models"
)

// Next moves to the following card, wrapping to the first, and shows the
// front.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsFlipped = false
	c.state.CurrentCardIndex = flashcard.NextIndex(c.state.CurrentCardIndex, len(c.state.Cards))
	c.speakLocked()
}

// Previous moves to the preceding card, wrapping to the last, and shows
// the front.
func (c *Controller) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsFlipped = false
	c.state.CurrentCardIndex = flashcard.PreviousIndex(c.state.CurrentCardIndex, len(c.state.Cards))
	c.speakLocked()
}

func (c *Controller) Flip() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.HasCards() {
		return
	}
	c.state.IsFlipped = !c.state.IsFlipped
	c.speakLocked()
}

// Shuffle randomises the study order. Calling it again restores the
// server order by reloading.
func (c *Controller) Shuffle(ctx context.Context) {
	c.mu.Lock()
	if c.state.IsShuffled {
		c.mu.Unlock()
		c.LoadCards(ctx)
		return
	}
	defer c.mu.Unlock()
	if len(c.state.Cards) < 2 {
		return
	}
	c.state.Cards = flashcard.Shuffle(c.state.Cards, c.rng)
	c.state.IsShuffled = true
	c.state.CurrentCardIndex = 0
	c.state.IsFlipped = false
	c.speakLocked()
}

// SelectCard jumps to a card of the study collection and opens the viewer.
func (c *Controller) SelectCard(cardID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := flashcard.IndexOf(c.state.Cards, cardID)
	if i < 0 {
		c.notifyLocked(models.LevelError, "Card not found")
		return
	}
	c.state.CurrentCardIndex = i
	c.state.IsFlipped = false
	c.state.ActiveTab = models.TabCards
	c.speakLocked()
}

func (c *Controller) SetSearch(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SearchQuery = query
}

// SetCategoryFilter filters the dictionary by category; nil or 0 clears it.
func (c *Controller) SetCategoryFilter(categoryID *int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if categoryID != nil && *categoryID == 0 {
		categoryID = nil
	}
	c.state.SelectedCategoryID = clonePtr(categoryID)
}

func (c *Controller) SetCourseFilter(course *int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SelectedCourse = clonePtr(course)
}

func (c *Controller) SetSort(key models.SortKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SortBy = key
}

// FilteredCards is the dictionary listing for the current filters.
func (c *Controller) FilteredCards() []models.WordCard {
	c.mu.Lock()
	defer c.mu.Unlock()
	return flashcard.DeriveFilteredCards(c.state.Cards, c.state.filter())
}
