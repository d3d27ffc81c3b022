package repository

import (
	"context"
	"time"

	"github.com/vytor/wordcards/internal/models"
)

// StorageRepository is the durable key-value store each browser client
// gets. Keys are namespaced by client id.
type StorageRepository interface {
	// Get returns nil and no error when the key is absent.
	Get(ctx context.Context, clientID, key string) (*models.StorageEntry, error)
	Set(ctx context.Context, clientID, key string, value []byte) error
	Delete(ctx context.Context, clientID, key string) error
	// Touch moves an entry's last write to now without changing its value.
	// It reports whether the entry exists.
	Touch(ctx context.Context, clientID, key string) (bool, error)
	// DeleteStale removes every entry last written before cutoff.
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}
