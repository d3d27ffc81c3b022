package controller

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/wordcards/internal/logger"
)

// Factory builds the controller of a new browser client.
type Factory func(clientID string) *Controller

// Registry owns one controller per browser client id.
type Registry struct {
	factory Factory
	now     func() time.Time
	log     *logger.Logger

	mu          sync.Mutex
	controllers map[string]*Controller
}

func NewRegistry(factory Factory) *Registry {
	return &Registry{
		factory:     factory,
		now:         time.Now,
		log:         logger.Default().WithPrefix("registry"),
		controllers: make(map[string]*Controller),
	}
}

// Get returns the client's controller, creating it and restoring its
// stored session on first use.
func (r *Registry) Get(ctx context.Context, clientID string) *Controller {
	r.mu.Lock()
	c, ok := r.controllers[clientID]
	if !ok {
		c = r.factory(clientID)
		r.controllers[clientID] = c
		r.log.Debug("created controller for client %s (%d live)", shortID(clientID), len(r.controllers))
	}
	r.mu.Unlock()

	c.Touch()
	c.Restore(ctx)
	return c
}

// Sweep evicts controllers idle for longer than maxIdle. Their stored
// sessions stay, so the next request restores them.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	return r.SweepAt(r.now(), maxIdle)
}

// SweepAt is Sweep measured from now.
func (r *Registry) SweepAt(now time.Time, maxIdle time.Duration) int {
	r.mu.Lock()
	var evicted []*Controller
	for id, c := range r.controllers {
		if c.IdleFor(now) > maxIdle {
			delete(r.controllers, id)
			evicted = append(evicted, c)
		}
	}
	live := len(r.controllers)
	r.mu.Unlock()

	for _, c := range evicted {
		c.Close()
	}
	if len(evicted) > 0 {
		r.log.Info("evicted %d idle controllers (%d live)", len(evicted), live)
	}
	return len(evicted)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}

// Close stops every controller.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.controllers {
		c.Close()
		delete(r.controllers, id)
	}
}
