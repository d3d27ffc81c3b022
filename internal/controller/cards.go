package controller

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/vytor/wordcards/internal/errors"
	"github.com/vytor/wordcards/internal/flashcard"
	"github.com/vytor/wordcards/internal/models"
)

func (c *Controller) SetNewCard(draft models.CardDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	draft.ID = 0
	c.state.NewCard = draft
}

// AddCard posts the new-card draft. Russian and english are required and
// checked before any request is made.
func (c *Controller) AddCard(ctx context.Context) {
	c.mu.Lock()
	user, ok := c.sessionLocked()
	draft := c.state.NewCard
	c.mu.Unlock()
	if !ok {
		return
	}
	if msg := validateCard(draft); msg != "" {
		c.notify(models.LevelError, msg)
		return
	}

	if err := c.client.CreateCard(ctx, user, trimDraft(draft)); err != nil {
		ctxLog(ctx, c).Warn("failed to add card: %v", err)
		c.notify(models.LevelError, apperrors.UserMessage(err, "Could not add card"))
		return
	}

	c.mu.Lock()
	c.state.NewCard = c.defaultCardDraftLocked()
	c.notifyLocked(models.LevelSuccess, "Card added!")
	c.mu.Unlock()

	c.LoadCards(ctx)
}

// BeginEdit opens the edit dialog for a card of the study collection.
func (c *Controller) BeginEdit(cardID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := flashcard.IndexOf(c.state.Cards, cardID)
	if i < 0 {
		c.notifyLocked(models.LevelError, "Card not found")
		return
	}
	draft := models.DraftFromCard(c.state.Cards[i])
	c.state.Editing = &draft
}

// SetEditing replaces the edit draft. The card id cannot be changed.
func (c *Controller) SetEditing(draft models.CardDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Editing == nil {
		return
	}
	draft.ID = c.state.Editing.ID
	c.state.Editing = &draft
}

func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Editing = nil
}

// EditCard saves the edit draft and closes the dialog on success.
func (c *Controller) EditCard(ctx context.Context) {
	c.mu.Lock()
	user, ok := c.sessionLocked()
	editing := clonePtr(c.state.Editing)
	c.mu.Unlock()
	if !ok {
		return
	}
	if editing == nil {
		c.notify(models.LevelError, "No card is being edited")
		return
	}
	if msg := validateCard(*editing); msg != "" {
		c.notify(models.LevelError, msg)
		return
	}

	if err := c.client.UpdateCard(ctx, user, trimDraft(*editing)); err != nil {
		ctxLog(ctx, c).Warn("failed to update card %d: %v", editing.ID, err)
		c.notify(models.LevelError, apperrors.UserMessage(err, "Could not update card"))
		return
	}

	c.mu.Lock()
	if c.state.Editing != nil && c.state.Editing.ID == editing.ID {
		c.state.Editing = nil
	}
	c.notifyLocked(models.LevelSuccess, "Card updated")
	c.mu.Unlock()

	c.LoadCards(ctx)
}

// DeleteCard removes a card once confirmer approves. Without approval no
// request is sent and the action is left pending.
func (c *Controller) DeleteCard(ctx context.Context, cardID int64, confirmer Confirmer) {
	user, ok := c.session()
	if !ok {
		return
	}
	if !c.confirmed(confirmer, ActionDeleteCard, "Delete this card?", cardID) {
		return
	}

	if err := c.client.DeleteCard(ctx, user, cardID); err != nil {
		ctxLog(ctx, c).Warn("failed to delete card %d: %v", cardID, err)
		c.notify(models.LevelError, apperrors.UserMessage(err, "Could not delete card"))
		return
	}

	c.mu.Lock()
	if c.state.Editing != nil && c.state.Editing.ID == cardID {
		c.state.Editing = nil
	}
	c.notifyLocked(models.LevelSuccess, "Card deleted")
	c.mu.Unlock()

	c.LoadCards(ctx)
}

// MarkLearned toggles the learned flag of one card. After the server
// acknowledges, only that card is patched locally; nothing is reloaded.
func (c *Controller) MarkLearned(ctx context.Context, cardID int64) {
	c.mu.Lock()
	user, ok := c.sessionLocked()
	i := flashcard.IndexOf(c.state.Cards, cardID)
	var learned bool
	if i >= 0 {
		learned = !c.state.Cards[i].Learned
	}
	c.mu.Unlock()
	if !ok {
		return
	}
	if i < 0 {
		c.notify(models.LevelError, "Card not found")
		return
	}

	if err := c.client.SetLearned(ctx, user, cardID, learned); err != nil {
		ctxLog(ctx, c).Warn("failed to set learned on card %d: %v", cardID, err)
		c.notify(models.LevelError, apperrors.UserMessage(err, "Could not update card"))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stillSignedIn(user) {
		return
	}
	patchLearned(c.state.Cards, cardID, learned)
	patchLearned(c.state.AllCards, cardID, learned)
	if learned {
		c.notifyLocked(models.LevelSuccess, "Great! Word learned")
	} else {
		c.notifyLocked(models.LevelSuccess, "Card marked as not learned")
	}
}

func patchLearned(cards []models.WordCard, cardID int64, learned bool) {
	if i := flashcard.IndexOf(cards, cardID); i >= 0 {
		cards[i].Learned = learned
	}
}

// Translate fills english and the examples of the new-card draft from its
// russian text. IsTranslating is cleared whatever the outcome.
func (c *Controller) Translate(ctx context.Context) {
	c.mu.Lock()
	russian := strings.TrimSpace(c.state.NewCard.Russian)
	c.mu.Unlock()

	c.translate(ctx, russian, func(tr models.Translation) {
		c.state.NewCard = c.state.NewCard.Apply(tr)
	})
}

// TranslateEditing does the same for the edit draft.
func (c *Controller) TranslateEditing(ctx context.Context) {
	c.mu.Lock()
	var russian string
	var editingID int64
	if c.state.Editing != nil {
		russian = strings.TrimSpace(c.state.Editing.Russian)
		editingID = c.state.Editing.ID
	}
	c.mu.Unlock()

	c.translate(ctx, russian, func(tr models.Translation) {
		if c.state.Editing == nil || c.state.Editing.ID != editingID {
			return
		}
		applied := c.state.Editing.Apply(tr)
		c.state.Editing = &applied
	})
}

// translate calls apply with the lock held when the request succeeds.
// A response that arrives after the session changed is dropped.
func (c *Controller) translate(ctx context.Context, russian string, apply func(models.Translation)) {
	c.mu.Lock()
	_, epoch, ok := c.sessionEpochLocked()
	switch {
	case !ok:
	case russian == "":
		c.notifyLocked(models.LevelError, "Enter a russian word to translate")
	default:
		c.state.IsTranslating = true
	}
	c.mu.Unlock()
	if !ok || russian == "" {
		return
	}

	tr, err := c.client.Translate(ctx, russian)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		ctxLog(ctx, c).Debug("dropping translation of %q for an ended session", russian)
		return
	}
	c.state.IsTranslating = false
	if err != nil {
		ctxLog(ctx, c).Warn("translation of %q failed: %v", russian, err)
		c.notifyLocked(models.LevelError, apperrors.UserMessage(err, "Translation failed"))
		return
	}
	apply(tr)
	c.notifyLocked(models.LevelSuccess, "Translation ready")
}

func (c *Controller) SetNewCategory(draft models.CategoryDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.NewCategory = draft
}

// AddCategory posts the new-category draft; the name is required.
func (c *Controller) AddCategory(ctx context.Context) {
	c.mu.Lock()
	user, ok := c.sessionLocked()
	draft := c.state.NewCategory
	c.mu.Unlock()
	if !ok {
		return
	}
	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		c.notify(models.LevelError, "Enter a category name")
		return
	}
	if draft.Color == "" {
		draft.Color = models.DefaultCategoryDraft().Color
	}

	if err := c.client.CreateCategory(ctx, user, draft); err != nil {
		ctxLog(ctx, c).Warn("failed to add category: %v", err)
		c.notify(models.LevelError, apperrors.UserMessage(err, "Could not add category"))
		return
	}

	c.mu.Lock()
	c.state.NewCategory = models.DefaultCategoryDraft()
	c.notifyLocked(models.LevelSuccess, "Category added")
	c.mu.Unlock()

	c.LoadCategories(ctx)
}

// ImportCards hands spreadsheet rows to the background import queue. The
// cards are reloaded once the whole batch has been attempted.
func (c *Controller) ImportCards(ctx context.Context, drafts []models.CardDraft) {
	user, ok := c.session()
	if !ok {
		return
	}
	if !user.IsAdmin {
		c.notify(models.LevelError, "Only administrators can import cards")
		return
	}
	if c.imports == nil {
		c.notify(models.LevelError, "Import is not available")
		return
	}

	err := c.imports.EnqueueImport(user, drafts, func(res models.ImportResult) {
		c.notify(importLevel(res), fmt.Sprintf("Imported %d cards (skipped %d, failed %d)", res.Created, res.Skipped, res.Failed))
		c.LoadCards(context.Background())
	})
	if err != nil {
		ctxLog(ctx, c).Warn("failed to enqueue import: %v", err)
		c.notify(models.LevelError, apperrors.UserMessage(err, "Could not start import"))
		return
	}
	c.notify(models.LevelInfo, fmt.Sprintf("Importing %d rows", len(drafts)))
}

func importLevel(res models.ImportResult) models.NotificationLevel {
	if res.Failed > 0 {
		return models.LevelError
	}
	return models.LevelSuccess
}

func validateCard(d models.CardDraft) string {
	missingRussian := strings.TrimSpace(d.Russian) == ""
	missingEnglish := strings.TrimSpace(d.English) == ""
	switch {
	case missingRussian && missingEnglish:
		return "Fill in the russian and english words"
	case missingRussian:
		return "Fill in the russian word"
	case missingEnglish:
		return "Fill in the english word"
	}
	return ""
}

func trimDraft(d models.CardDraft) models.CardDraft {
	d.Russian = strings.TrimSpace(d.Russian)
	d.English = strings.TrimSpace(d.English)
	d.RussianExample = strings.TrimSpace(d.RussianExample)
	d.EnglishExample = strings.TrimSpace(d.EnglishExample)
	return d
}
