// Package controller holds the per-client application controller: the one
// owner of session, collections, drafts and filters. Views only read
// snapshots and call operations.
//
// Operations never return errors. Every failure becomes a notification in
// the state. The mutex is never held across a network call, so overlapping
// reloads race and the response that arrives last is the one applied.
package controller

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/vytor/wordcards/internal/jobs"
	"github.com/vytor/wordcards/internal/logger"
	"github.com/vytor/wordcards/internal/models"
	"github.com/vytor/wordcards/internal/remote"
	"github.com/vytor/wordcards/internal/services"
	"github.com/vytor/wordcards/internal/speech"
)

// Deps are the collaborators of a controller. Speaker, Recorder and Imports
// are optional.
type Deps struct {
	Client   remote.ClientInterface
	Sessions services.SessionService
	Speaker  speech.Speaker
	Recorder *speech.Recorder
	Imports  jobs.JobQueue
	Rand     *rand.Rand
	Now      func() time.Time
}

type Controller struct {
	clientID string
	client   remote.ClientInterface
	sessions services.SessionService
	speaker  speech.Speaker
	recorder *speech.Recorder
	imports  jobs.JobQueue
	now      func() time.Time

	restoreMu sync.Mutex
	restored  bool

	mu       sync.Mutex
	state    State
	rng      *rand.Rand
	lastUsed time.Time
	// epoch changes whenever a session starts or ends.
	epoch uint64
}

func New(clientID string, deps Deps) *Controller {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	speaker := deps.Speaker
	if speaker == nil {
		speaker = silent{}
	}
	return &Controller{
		clientID: clientID,
		client:   deps.Client,
		sessions: deps.Sessions,
		speaker:  speaker,
		recorder: deps.Recorder,
		imports:  deps.Imports,
		now:      now,
		state:    initialState(),
		rng:      rng,
		lastUsed: now(),
	}
}

func (c *Controller) ClientID() string {
	return c.clientID
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// View returns a snapshot together with the derived card lists and
// progress figures.
func (c *Controller) View() View {
	v := newView(c.Snapshot())
	if c.recorder != nil {
		if u, ok := c.recorder.Latest(); ok {
			v.Utterance = &u
		}
	}
	return v
}

// SignedIn reports whether a session is active.
func (c *Controller) SignedIn() bool {
	_, ok := c.session()
	return ok
}

// HasCards reports whether the study views have anything to show.
func (c *Controller) HasCards() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.HasCards()
}

// TakeNotifications drains the pending notifications.
func (c *Controller) TakeNotifications() []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.state.Notifications
	c.state.Notifications = nil
	return out
}

// Touch marks the controller as used now.
func (c *Controller) Touch() {
	c.mu.Lock()
	c.lastUsed = c.now()
	c.mu.Unlock()
}

// IdleFor returns how long the controller has gone unused.
func (c *Controller) IdleFor(now time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return now.Sub(c.lastUsed)
}

// Close stops any utterance still playing.
func (c *Controller) Close() {
	c.speaker.Cancel()
}

func (c *Controller) SetTab(tab models.Tab) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ActiveTab = tab
}

// DismissConfirmation drops a pending destructive action.
func (c *Controller) DismissConfirmation() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Pending = nil
}

func (c *Controller) notify(level models.NotificationLevel, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifyLocked(level, msg)
}

func (c *Controller) notifyLocked(level models.NotificationLevel, msg string) {
	c.state.Notifications = append(c.state.Notifications, models.Notification{
		Level:   level,
		Message: msg,
		At:      c.now(),
	})
	if n := len(c.state.Notifications); n > maxNotifications {
		c.state.Notifications = c.state.Notifications[n-maxNotifications:]
	}
}

// session returns the signed-in user, if any.
func (c *Controller) session() (models.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionLocked()
}

func (c *Controller) sessionLocked() (models.User, bool) {
	if c.state.Session == nil {
		return models.User{}, false
	}
	return *c.state.Session, true
}

// sessionEpochLocked returns the signed-in user with the epoch a response
// must still match to be applied.
func (c *Controller) sessionEpochLocked() (models.User, uint64, bool) {
	user, ok := c.sessionLocked()
	return user, c.epoch, ok
}

// stillSignedIn reports whether the response of a call made for user may
// still be applied. A logout in between discards it.
func (c *Controller) stillSignedIn(user models.User) bool {
	return c.state.Session != nil && c.state.Session.ID == user.ID
}

// speakLocked pronounces the visible face of the current card: russian on
// the front, english on the back.
func (c *Controller) speakLocked() {
	card, ok := c.state.CurrentCard()
	if !ok {
		c.speaker.Cancel()
		return
	}
	if c.state.IsFlipped {
		c.speaker.Speak(card.English, speech.LangEnglish)
		return
	}
	c.speaker.Speak(card.Russian, speech.LangRussian)
}

func (c *Controller) currentCardIDLocked() int64 {
	if card, ok := c.state.CurrentCard(); ok {
		return card.ID
	}
	return 0
}

type silent struct{}

func (silent) Speak(string, string) {}
func (silent) Cancel()              {}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func ctxLog(ctx context.Context, c *Controller) *logger.Logger {
	return logger.FromContext(ctx).WithPrefix("controller").WithField("client", shortID(c.clientID))
}
