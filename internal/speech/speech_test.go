package speech_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vytor/wordcards/internal/speech"
)

// blockingPlayer holds every utterance until it is cancelled.
type blockingPlayer struct {
	mu        sync.Mutex
	started   []string
	cancelled []string
	playing   chan string
}

func newBlockingPlayer() *blockingPlayer {
	return &blockingPlayer{playing: make(chan string, 10)}
}

func (p *blockingPlayer) Play(ctx context.Context, u speech.Utterance) error {
	p.mu.Lock()
	p.started = append(p.started, u.Text)
	p.mu.Unlock()
	p.playing <- u.Text

	<-ctx.Done()

	p.mu.Lock()
	p.cancelled = append(p.cancelled, u.Text)
	p.mu.Unlock()
	return ctx.Err()
}

func (p *blockingPlayer) snapshot() ([]string, []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.started...), append([]string(nil), p.cancelled...)
}

func waitPlaying(t *testing.T, p *blockingPlayer, want string) {
	t.Helper()
	select {
	case got := <-p.playing:
		require.Equal(t, want, got)
	case <-time.After(5 * time.Second):
		t.Fatalf("utterance %q never started", want)
	}
}

func TestLastWins_CancelsPreviousUtterance(t *testing.T) {
	player := newBlockingPlayer()
	s := speech.NewLastWins(player)

	s.Speak("Кот", speech.LangRussian)
	waitPlaying(t, player, "Кот")

	s.Speak("Cat", speech.LangEnglish)
	waitPlaying(t, player, "Cat")

	started, cancelled := player.snapshot()
	assert.Equal(t, []string{"Кот", "Cat"}, started)
	assert.Equal(t, []string{"Кот"}, cancelled)

	s.Cancel()
	_, cancelled = player.snapshot()
	assert.Equal(t, []string{"Кот", "Cat"}, cancelled)
}

func TestLastWins_EmptyTextOnlyCancels(t *testing.T) {
	player := newBlockingPlayer()
	s := speech.NewLastWins(player)

	s.Speak("Кот", speech.LangRussian)
	waitPlaying(t, player, "Кот")
	s.Speak("", speech.LangRussian)

	started, cancelled := player.snapshot()
	assert.Equal(t, []string{"Кот"}, started)
	assert.Equal(t, []string{"Кот"}, cancelled)
}

func TestRecorder_KeepsLatest(t *testing.T) {
	rec := &speech.Recorder{}
	_, ok := rec.Latest()
	assert.False(t, ok)

	s := speech.NewLastWins(rec)
	s.Speak("Кот", speech.LangRussian)
	s.Speak("Cat", speech.LangEnglish)
	s.Cancel()

	u, ok := rec.Latest()
	require.True(t, ok)
	assert.Equal(t, "Cat", u.Text)
	assert.Equal(t, speech.LangEnglish, u.Lang)
	assert.Equal(t, uint64(2), u.Seq)
}

func TestRecorder_IgnoresOlderSequence(t *testing.T) {
	rec := &speech.Recorder{}
	require.NoError(t, rec.Play(context.Background(), speech.Utterance{Text: "new", Seq: 5}))
	require.NoError(t, rec.Play(context.Background(), speech.Utterance{Text: "old", Seq: 4}))

	u, _ := rec.Latest()
	assert.Equal(t, "new", u.Text)
}

func TestPlayers_FanOut(t *testing.T) {
	a, b := &speech.Recorder{}, &speech.Recorder{}
	require.NoError(t, speech.Players{a, b}.Play(context.Background(), speech.Utterance{Text: "Дом", Seq: 1}))

	ua, _ := a.Latest()
	ub, _ := b.Latest()
	assert.Equal(t, "Дом", ua.Text)
	assert.Equal(t, "Дом", ub.Text)
}

func TestCommand_Args(t *testing.T) {
	cmd, err := speech.NewCommand("espeak-ng -v {voice} {text}")
	require.NoError(t, err)

	assert.Equal(t, []string{"-v", "ru", "Собака"}, cmd.Args(speech.Utterance{Text: "Собака", Lang: speech.LangRussian}))
	assert.Equal(t, []string{"-v", "en-us", "a big dog"}, cmd.Args(speech.Utterance{Text: "a big dog", Lang: speech.LangEnglish}))

	_, err = speech.NewCommand("   ")
	assert.Error(t, err)
}
