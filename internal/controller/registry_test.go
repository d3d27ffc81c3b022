package controller_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vytor/wordcards/internal/controller"
	"github.com/vytor/wordcards/internal/models"
)

func TestRegistry_GetRestoresStoredSessionOnce(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sessions.Save(context.Background(), clientID, alice))
	f.expectLoads(alice, deck())

	created := 0
	reg := controller.NewRegistry(func(id string) *controller.Controller {
		created++
		return controller.New(id, controller.Deps{Client: f.client, Sessions: f.sessions})
	})

	c1 := reg.Get(context.Background(), clientID)
	c2 := reg.Get(context.Background(), clientID)

	assert.Same(t, c1, c2)
	assert.Equal(t, 1, created)
	assert.Equal(t, &alice, c1.Snapshot().Session)
	f.client.AssertNumberOfCalls(t, "ListCards", 1)
}

func TestRegistry_SeparateClients(t *testing.T) {
	f := newFixture(t)
	reg := controller.NewRegistry(func(id string) *controller.Controller {
		return controller.New(id, controller.Deps{Client: f.client, Sessions: f.sessions})
	})

	a := reg.Get(context.Background(), "client-a")
	b := reg.Get(context.Background(), "client-b")

	assert.NotSame(t, a, b)
	assert.Equal(t, "client-a", a.ClientID())
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_SweepEvictsIdleControllers(t *testing.T) {
	f := newFixture(t)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := start
	reg := controller.NewRegistry(func(id string) *controller.Controller {
		return controller.New(id, controller.Deps{
			Client:   f.client,
			Sessions: f.sessions,
			Now:      func() time.Time { return clock },
		})
	})

	reg.Get(context.Background(), "idle")
	clock = start.Add(50 * time.Minute)
	reg.Get(context.Background(), "busy")

	evicted := reg.SweepAt(start.Add(time.Hour), 30*time.Minute)
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, reg.Len())

	reg.Close()
	assert.Equal(t, 0, reg.Len())
}

type syncQueue struct {
	got []models.CardDraft
	res models.ImportResult
	err error
}

func (q *syncQueue) EnqueueImport(_ models.User, drafts []models.CardDraft, done func(models.ImportResult)) error {
	if q.err != nil {
		return q.err
	}
	q.got = drafts
	done(q.res)
	return nil
}

func TestImportCards_ReloadsWhenFinished(t *testing.T) {
	f := newFixture(t)
	queue := &syncQueue{res: models.ImportResult{Created: 2, Skipped: 1}}
	f.ctrl = controller.New(clientID, controller.Deps{Client: f.client, Sessions: f.sessions, Imports: queue})
	f.login(t, admin, deck())

	f.client.On("ListCards", mock.Anything, admin, (*int64)(nil)).Return(deck(), nil).Once()
	drafts := []models.CardDraft{{Russian: "Окно", English: "Window"}, {Russian: "Лес", English: "Forest"}, {}}

	f.ctrl.ImportCards(context.Background(), drafts)

	assert.Len(t, queue.got, 3)
	notes := f.ctrl.TakeNotifications()
	require.Len(t, notes, 2)
	assert.Equal(t, "Imported 2 cards (skipped 1, failed 0)", notes[0].Message)
	assert.Equal(t, "Importing 3 rows", notes[1].Message)
	f.client.AssertNumberOfCalls(t, "ListCards", 2)
}

func TestImportCards_AdminOnly(t *testing.T) {
	f := newFixture(t)
	queue := &syncQueue{}
	f.ctrl = controller.New(clientID, controller.Deps{Client: f.client, Sessions: f.sessions, Imports: queue})
	f.login(t, alice, deck())

	f.ctrl.ImportCards(context.Background(), []models.CardDraft{{Russian: "Окно", English: "Window"}})

	assert.Nil(t, queue.got)
	assert.Equal(t, "Only administrators can import cards", lastMessage(t, f.ctrl))
}
