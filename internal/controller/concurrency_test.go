package controller_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vytor/wordcards/internal/models"
	"github.com/vytor/wordcards/internal/testutil/mocks"
)

// gatedClient holds ListCards calls until the test releases them, so the
// order in which responses arrive is under the test's control.
type gatedClient struct {
	*mocks.MockRemoteClient
	gate  atomic.Bool
	calls chan chan []models.WordCard
}

func (g *gatedClient) ListCards(ctx context.Context, user models.User, groupID *int64) ([]models.WordCard, error) {
	if !g.gate.Load() {
		return g.MockRemoteClient.ListCards(ctx, user, groupID)
	}
	reply := make(chan []models.WordCard)
	g.calls <- reply
	return <-reply, nil
}

func awaitCall(t *testing.T, g *gatedClient) chan []models.WordCard {
	t.Helper()
	select {
	case reply := <-g.calls:
		return reply
	case <-time.After(5 * time.Second):
		t.Fatal("ListCards was never called")
		return nil
	}
}

func TestLoadCards_OverlappingResponsesApplyInArrivalOrder(t *testing.T) {
	f := newFixture(t)
	gated := &gatedClient{MockRemoteClient: f.client, calls: make(chan chan []models.WordCard)}
	f.ctrl = f.newController(gated)
	f.login(t, alice, deck())
	gated.gate.Store(true)

	first := []models.WordCard{{ID: 10, Russian: "Первый", English: "First"}}
	second := []models.WordCard{{ID: 20, Russian: "Второй", English: "Second"}}

	var wg sync.WaitGroup
	run := func() *sync.WaitGroup {
		var done sync.WaitGroup
		done.Add(1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer done.Done()
			f.ctrl.LoadCards(context.Background())
		}()
		return &done
	}

	doneA := run()
	replyA := awaitCall(t, gated)
	doneB := run()
	replyB := awaitCall(t, gated)

	// The second request resolves first...
	replyB <- second
	doneB.Wait()
	assert.Equal(t, second, f.ctrl.Snapshot().Cards)

	// ...and the first one, arriving later, overwrites it.
	replyA <- first
	doneA.Wait()
	wg.Wait()

	require.Equal(t, first, f.ctrl.Snapshot().Cards)
	assert.Equal(t, 0, f.ctrl.Snapshot().CurrentCardIndex)
}

func TestLoadCards_ResponseAfterLogoutIsDropped(t *testing.T) {
	f := newFixture(t)
	gated := &gatedClient{MockRemoteClient: f.client, calls: make(chan chan []models.WordCard)}
	f.ctrl = f.newController(gated)
	f.login(t, alice, deck())
	gated.gate.Store(true)

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.ctrl.LoadCards(context.Background())
	}()
	reply := awaitCall(t, gated)

	f.ctrl.Logout(context.Background())
	reply <- deck()
	<-done

	assert.Empty(t, f.ctrl.Snapshot().Cards)
}
