// Package speech is the pronunciation side channel. Every change of the
// visible card face produces an utterance; a newer utterance always cancels
// the one still playing.
package speech

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vytor/wordcards/internal/logger"
)

const (
	LangRussian = "ru-RU"
	LangEnglish = "en-US"
)

// Utterance is one piece of text to pronounce. Seq increases with every
// utterance a speaker starts, so a page can tell a repeat from a new one.
type Utterance struct {
	Text string    `json:"text"`
	Lang string    `json:"lang"`
	Seq  uint64    `json:"seq"`
	At   time.Time `json:"at"`
}

// Player pronounces an utterance and returns when it is done or ctx is
// cancelled.
type Player interface {
	Play(ctx context.Context, u Utterance) error
}

// Speaker is what the controller talks to.
type Speaker interface {
	Speak(text, lang string)
	Cancel()
}

// LastWins runs at most one utterance at a time. Speak cancels whatever is
// playing before starting the new utterance; nothing is queued.
type LastWins struct {
	player Player
	log    *logger.Logger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

func NewLastWins(player Player) *LastWins {
	return &LastWins{
		player: player,
		log:    logger.Default().WithPrefix("speech"),
	}
}

func (s *LastWins) Speak(text, lang string) {
	if text == "" {
		s.Cancel()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()

	s.seq++
	u := Utterance{Text: text, Lang: lang, Seq: s.seq, At: time.Now()}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel, s.done = cancel, done

	go func() {
		defer close(done)
		if err := s.player.Play(ctx, u); err != nil && !errors.Is(err, context.Canceled) {
			s.log.Warn("utterance %d failed: %v", u.Seq, err)
		}
	}()
}

// Cancel stops the current utterance, if any, and waits for it to finish.
func (s *LastWins) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *LastWins) stopLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel, s.done = nil, nil
}

// Players fans an utterance out to several players and returns the first
// error.
type Players []Player

func (ps Players) Play(ctx context.Context, u Utterance) error {
	var wg sync.WaitGroup
	errs := make([]error, len(ps))
	for i, p := range ps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = p.Play(ctx, u)
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}
