package speech

import (
	"context"
	"sync"
)

// Recorder keeps the latest utterance so the page can hand it to the
// browser's speech synthesis.
type Recorder struct {
	mu     sync.RWMutex
	latest Utterance
	ok     bool
}

func (r *Recorder) Play(_ context.Context, u Utterance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ok && u.Seq < r.latest.Seq {
		return nil
	}
	r.latest, r.ok = u, true
	return nil
}

// Latest returns the most recent utterance, if one was ever played.
func (r *Recorder) Latest() (Utterance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest, r.ok
}
