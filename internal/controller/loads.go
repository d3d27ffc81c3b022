package controller

import (
	"context"

	apperrors "github.com/vytor/wordcards/internal/errors"
	"github.com/vytor/wordcards/internal/flashcard"
	"github.com/vytor/wordcards/internal/models"
)

// LoadCategories replaces the categories wholesale.
func (c *Controller) LoadCategories(ctx context.Context) {
	user, ok := c.session()
	if !ok {
		return
	}

	categories, err := c.client.ListCategories(ctx, user)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stillSignedIn(user) {
		return
	}
	if err != nil {
		ctxLog(ctx, c).Warn("failed to load categories: %v", err)
		c.state.Categories = nil
		c.notifyLocked(models.LevelError, apperrors.UserMessage(err, "Could not load categories"))
		return
	}
	c.state.Categories = categories
	if isBlankDraft(c.state.NewCard) {
		c.state.NewCard = c.defaultCardDraftLocked()
	}
}

// LoadCards replaces the study collection, scoped to the selected group.
// The index is clamped so it stays valid for the new collection.
func (c *Controller) LoadCards(ctx context.Context) {
	c.mu.Lock()
	user, ok := c.sessionLocked()
	groupID := clonePtr(c.state.SelectedGroupID)
	c.mu.Unlock()
	if !ok {
		return
	}

	cards, err := c.client.ListCards(ctx, user, groupID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stillSignedIn(user) {
		return
	}
	if err != nil {
		ctxLog(ctx, c).Warn("failed to load cards: %v", err)
		cards = nil
		c.notifyLocked(models.LevelError, apperrors.UserMessage(err, "Could not load cards"))
	}
	c.replaceCardsLocked(cards)
}

func (c *Controller) replaceCardsLocked(cards []models.WordCard) {
	before := c.currentCardIDLocked()
	c.state.Cards = cards
	c.state.IsShuffled = false
	c.state.CurrentCardIndex = flashcard.ClampIndex(c.state.CurrentCardIndex, len(cards))
	if c.currentCardIDLocked() != before {
		c.state.IsFlipped = false
		c.speakLocked()
	}
}

// LoadAllCards refreshes the unscoped snapshot used by the add-to-group
// dialog.
func (c *Controller) LoadAllCards(ctx context.Context) {
	user, ok := c.session()
	if !ok {
		return
	}

	cards, err := c.client.ListCards(ctx, user, nil)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stillSignedIn(user) {
		return
	}
	if err != nil {
		ctxLog(ctx, c).Warn("failed to load all cards: %v", err)
		c.state.AllCards = nil
		c.notifyLocked(models.LevelError, apperrors.UserMessage(err, "Could not load cards"))
		return
	}
	c.state.AllCards = cards
}

func (c *Controller) LoadGroups(ctx context.Context) {
	user, ok := c.session()
	if !ok {
		return
	}

	groups, err := c.client.ListGroups(ctx, user)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stillSignedIn(user) {
		return
	}
	if err != nil {
		ctxLog(ctx, c).Warn("failed to load groups: %v", err)
		c.state.Groups = nil
		c.notifyLocked(models.LevelError, apperrors.UserMessage(err, "Could not load groups"))
		return
	}
	c.state.Groups = groups
}

// LoadAccounts fetches the progress roster. Only admins have one.
func (c *Controller) LoadAccounts(ctx context.Context) {
	user, ok := c.session()
	if !ok || !user.IsAdmin {
		return
	}

	accounts, err := c.client.ListAccounts(ctx, user)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stillSignedIn(user) {
		return
	}
	if err != nil {
		ctxLog(ctx, c).Warn("failed to load accounts: %v", err)
		c.state.Accounts = nil
		c.notifyLocked(models.LevelError, apperrors.UserMessage(err, "Could not load accounts"))
		return
	}
	c.state.Accounts = accounts
}

func (c *Controller) defaultCardDraftLocked() models.CardDraft {
	var d models.CardDraft
	if len(c.state.Categories) > 0 {
		d.CategoryID = c.state.Categories[0].ID
	}
	return d
}

func isBlankDraft(d models.CardDraft) bool {
	return d == models.CardDraft{}
}
