package controller

import (
	"context"
	"strings"

	apperrors "github.com/vytor/wordcards/internal/errors"
	"github.com/vytor/wordcards/internal/models"
)

// Authenticate logs in or registers. On success the session is stored
// durably and every collection is loaded; on failure the previous state is
// left as it was.
func (c *Controller) Authenticate(ctx context.Context, mode models.AuthMode, username, password string) {
	log := ctxLog(ctx, c)
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		c.notify(models.LevelError, "Enter username and password")
		return
	}

	c.mu.Lock()
	prevPhase := c.state.Phase
	c.state.Phase = PhaseAuthenticating
	c.mu.Unlock()

	user, err := c.client.Authenticate(ctx, mode, username, password)
	if err != nil {
		log.Warn("%s failed for %s: %v", mode, username, err)
		c.mu.Lock()
		if c.state.Phase == PhaseAuthenticating {
			c.state.Phase = prevPhase
		}
		c.notifyLocked(models.LevelError, apperrors.UserMessage(err, authFallback(mode)))
		c.mu.Unlock()
		return
	}

	if err := c.sessions.Save(ctx, c.clientID, *user); err != nil {
		log.Error("failed to persist session: %v", err)
	}

	c.mu.Lock()
	c.state = initialState()
	c.state.Session = user
	c.state.Phase = PhaseAuthenticated
	c.epoch++
	if mode == models.AuthRegister {
		c.notifyLocked(models.LevelSuccess, "Account created. Welcome, "+user.Username+"!")
	} else {
		c.notifyLocked(models.LevelSuccess, "Welcome, "+user.Username+"!")
	}
	c.mu.Unlock()

	log.Info("%s succeeded: user_id=%d admin=%t", mode, user.ID, user.IsAdmin)
	c.loadAll(ctx, *user)
}

// Logout forgets the session in memory and in durable storage. It always
// succeeds locally.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.sessions.Clear(ctx, c.clientID); err != nil {
		ctxLog(ctx, c).Error("failed to clear stored session: %v", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = initialState()
	c.epoch++
	c.speaker.Cancel()
	c.notifyLocked(models.LevelInfo, "Signed out")
}

// Restore brings back a stored session the first time it can be read.
// A storage error leaves the controller signed out and is retried on the
// next request. Without a stored session the controller stays on the auth
// view.
func (c *Controller) Restore(ctx context.Context) {
	log := ctxLog(ctx, c)

	c.restoreMu.Lock()
	if c.restored {
		c.restoreMu.Unlock()
		return
	}
	user, err := c.sessions.Load(ctx, c.clientID)
	if err != nil {
		c.restoreMu.Unlock()
		log.Error("failed to load stored session, will retry: %v", err)
		return
	}
	c.restored = true
	c.restoreMu.Unlock()
	if user == nil {
		return
	}

	c.mu.Lock()
	if c.state.Session != nil {
		c.mu.Unlock()
		return
	}
	c.state.Session = user
	c.state.Phase = PhaseAuthenticated
	c.epoch++
	c.mu.Unlock()

	log.Debug("restored session: user_id=%d", user.ID)
	// The collections outlive the request that happened to restore them.
	c.loadAll(context.WithoutCancel(ctx), *user)
}

// KeepSessionAlive moves the stored session's age to now, so it is only
// purged after going unused for the whole retention period.
func (c *Controller) KeepSessionAlive(ctx context.Context) {
	if _, ok := c.session(); !ok {
		return
	}
	if err := c.sessions.Touch(ctx, c.clientID); err != nil {
		ctxLog(ctx, c).Warn("failed to refresh stored session: %v", err)
	}
}

// loadAll fetches every collection the signed-in user can see.
func (c *Controller) loadAll(ctx context.Context, user models.User) {
	c.LoadCategories(ctx)
	c.LoadCards(ctx)
	c.LoadGroups(ctx)
	if user.IsAdmin {
		c.LoadAccounts(ctx)
	}
}

func authFallback(mode models.AuthMode) string {
	if mode == models.AuthRegister {
		return "Registration failed"
	}
	return "Login failed"
}
