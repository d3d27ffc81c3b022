package controller

import (
	"context"
	"fmt"
	"slices"
	"strings"

	apperrors "github.com/vytor/wordcards/internal/errors"
	"github.com/vytor/wordcards/internal/flashcard"
	"github.com/vytor/wordcards/internal/models"
)

func (c *Controller) SetNewGroup(draft models.GroupDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.NewGroup = draft
}

func (c *Controller) CreateGroup(ctx context.Context) {
	c.mu.Lock()
	user, ok := c.sessionLocked()
	draft := c.state.NewGroup
	c.mu.Unlock()
	if !ok {
		return
	}
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Description = strings.TrimSpace(draft.Description)
	if draft.Name == "" {
		c.notify(models.LevelError, "Enter a group name")
		return
	}
	if draft.Color == "" {
		draft.Color = models.DefaultGroupColor
	}

	if err := c.client.CreateGroup(ctx, user, draft); err != nil {
		ctxLog(ctx, c).Warn("failed to create group: %v", err)
		c.notify(models.LevelError, apperrors.UserMessage(err, "Could not create group"))
		return
	}

	c.mu.Lock()
	c.state.NewGroup = models.DefaultGroupDraft()
	c.notifyLocked(models.LevelSuccess, "Group created")
	c.mu.Unlock()

	c.LoadGroups(ctx)
}

// DeleteGroup removes a group once confirmer approves. A group that was
// scoping the study collection stops doing so.
func (c *Controller) DeleteGroup(ctx context.Context, groupID int64, confirmer Confirmer) {
	user, ok := c.session()
	if !ok {
		return
	}
	if !c.confirmed(confirmer, ActionDeleteGroup, "Delete this group?", groupID) {
		return
	}

	if err := c.client.DeleteGroup(ctx, user, groupID); err != nil {
		ctxLog(ctx, c).Warn("failed to delete group %d: %v", groupID, err)
		c.notify(models.LevelError, apperrors.UserMessage(err, "Could not delete group"))
		return
	}

	c.mu.Lock()
	wasSelected := c.state.SelectedGroupID != nil && *c.state.SelectedGroupID == groupID
	if wasSelected {
		c.state.SelectedGroupID = nil
	}
	if c.state.DialogGroupID != nil && *c.state.DialogGroupID == groupID {
		c.closeDialogLocked()
	}
	c.notifyLocked(models.LevelSuccess, "Group deleted")
	c.mu.Unlock()

	c.LoadGroups(ctx)
	if wasSelected {
		c.LoadCards(ctx)
	}
}

// SelectGroup scopes the study collection to a group, or lifts the scope
// when groupID is nil, and opens the card viewer.
func (c *Controller) SelectGroup(ctx context.Context, groupID *int64) {
	if groupID != nil && *groupID == 0 {
		groupID = nil
	}
	c.mu.Lock()
	c.state.SelectedGroupID = clonePtr(groupID)
	c.state.CurrentCardIndex = 0
	c.state.IsFlipped = false
	c.state.ActiveTab = models.TabCards
	c.mu.Unlock()

	c.LoadCards(ctx)
}

// OpenAddCardsDialog starts picking cards for a group from the unscoped
// collection.
func (c *Controller) OpenAddCardsDialog(ctx context.Context, groupID int64) {
	if _, ok := c.session(); !ok {
		return
	}
	c.mu.Lock()
	c.state.ShowAddCardsDialog = true
	c.state.DialogGroupID = &groupID
	c.state.SelectedCardIDs = nil
	c.state.DialogSearchQuery = ""
	c.state.DialogCourse = nil
	c.state.DialogSortBy = models.SortNone
	c.mu.Unlock()

	c.LoadAllCards(ctx)
}

func (c *Controller) CloseAddCardsDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeDialogLocked()
}

func (c *Controller) closeDialogLocked() {
	c.state.ShowAddCardsDialog = false
	c.state.DialogGroupID = nil
	c.state.SelectedCardIDs = nil
}

// SetDialogFilter narrows the cards offered in the add-to-group dialog.
func (c *Controller) SetDialogFilter(query string, course *int, sortBy models.SortKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.DialogSearchQuery = query
	c.state.DialogCourse = clonePtr(course)
	c.state.DialogSortBy = sortBy
}

func (c *Controller) ToggleCardSelection(cardID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := slices.Index(c.state.SelectedCardIDs, cardID); i >= 0 {
		c.state.SelectedCardIDs = slices.Delete(c.state.SelectedCardIDs, i, i+1)
		return
	}
	c.state.SelectedCardIDs = append(c.state.SelectedCardIDs, cardID)
}

// SetSelection replaces the multi-select buffer.
func (c *Controller) SetSelection(cardIDs []int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SelectedCardIDs = nil
	for _, id := range cardIDs {
		if !slices.Contains(c.state.SelectedCardIDs, id) {
			c.state.SelectedCardIDs = append(c.state.SelectedCardIDs, id)
		}
	}
}

// SelectAllDialogCards selects every card the dialog currently shows.
func (c *Controller) SelectAllDialogCards() {
	c.mu.Lock()
	defer c.mu.Unlock()
	visible := flashcard.DeriveFilteredCards(c.state.AllCards, c.state.dialogFilter())
	c.state.SelectedCardIDs = make([]int64, 0, len(visible))
	for _, card := range visible {
		c.state.SelectedCardIDs = append(c.state.SelectedCardIDs, card.ID)
	}
}

func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SelectedCardIDs = nil
}

// AddCardsToGroup attaches the selected cards. An empty selection is a
// no-op; success clears the selection and closes the dialog.
func (c *Controller) AddCardsToGroup(ctx context.Context, groupID int64) {
	c.mu.Lock()
	user, ok := c.sessionLocked()
	cardIDs := slices.Clone(c.state.SelectedCardIDs)
	c.mu.Unlock()
	if !ok || len(cardIDs) == 0 {
		return
	}

	if err := c.client.AddCardsToGroup(ctx, user, groupID, cardIDs); err != nil {
		ctxLog(ctx, c).Warn("failed to add %d cards to group %d: %v", len(cardIDs), groupID, err)
		c.notify(models.LevelError, apperrors.UserMessage(err, "Could not add cards to group"))
		return
	}

	c.mu.Lock()
	c.closeDialogLocked()
	c.notifyLocked(models.LevelSuccess, fmt.Sprintf("Added %d cards to the group", len(cardIDs)))
	c.mu.Unlock()

	c.LoadGroups(ctx)
}
