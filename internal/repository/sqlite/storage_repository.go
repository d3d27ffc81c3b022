package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/vytor/wordcards/internal/logger"
	"github.com/vytor/wordcards/internal/models"
	"github.com/vytor/wordcards/internal/repository"
)

const storageTable = "client_storage"

type storageRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewStorageRepository creates a new StorageRepository implementation
func NewStorageRepository(db *sql.DB) repository.StorageRepository {
	return &storageRepository{
		db:  wrap(db),
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *storageRepository) Get(ctx context.Context, clientID, key string) (*models.StorageEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("storage_repo")
	log.Debug("getting entry: client=%s, key=%s", clientID, key)

	query, args, err := psql.
		Select("client_id", "key", "value", "updated_at").
		From(storageTable).
		Where(sq.Eq{"client_id": clientID, "key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build storage query: %w", err)
	}

	var entry models.StorageEntry
	err = r.db.GetContext(ctx, &entry, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("entry not found: client=%s, key=%s", clientID, key)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get entry: %v", err)
		return nil, fmt.Errorf("failed to get storage entry[%s]: %w", key, err)
	}
	return &entry, nil
}

func (r *storageRepository) Set(ctx context.Context, clientID, key string, value []byte) error {
	log := logger.FromContext(ctx).WithPrefix("storage_repo")
	log.Debug("setting entry: client=%s, key=%s, size=%d", clientID, key, len(value))

	query, args, err := psql.
		Insert(storageTable).
		Columns("client_id", "key", "value", "updated_at").
		Values(clientID, key, value, r.now()).
		Suffix("ON CONFLICT(client_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build storage upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to set entry: %v", err)
		return fmt.Errorf("failed to set storage entry[%s]: %w", key, err)
	}
	return nil
}

func (r *storageRepository) Delete(ctx context.Context, clientID, key string) error {
	log := logger.FromContext(ctx).WithPrefix("storage_repo")
	log.Debug("deleting entry: client=%s, key=%s", clientID, key)

	query, args, err := psql.
		Delete(storageTable).
		Where(sq.Eq{"client_id": clientID, "key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build storage delete: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to delete entry: %v", err)
		return fmt.Errorf("failed to delete storage entry[%s]: %w", key, err)
	}
	return nil
}

func (r *storageRepository) Touch(ctx context.Context, clientID, key string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("storage_repo")

	query, args, err := psql.
		Update(storageTable).
		Set("updated_at", r.now()).
		Where(sq.Eq{"client_id": clientID, "key": key}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build storage touch: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to touch entry: %v", err)
		return false, fmt.Errorf("failed to touch storage entry[%s]: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	log.Debug("touched entry: client=%s, key=%s, found=%t", clientID, key, n > 0)
	return n > 0, nil
}

func (r *storageRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("storage_repo")

	query, args, err := psql.
		Delete(storageTable).
		Where(sq.Lt{"updated_at": cutoff.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build stale delete: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete stale entries: %v", err)
		return 0, fmt.Errorf("failed to delete stale storage entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	log.Debug("deleted %d stale entries older than %s", n, cutoff.Format(time.RFC3339))
	return n, nil
}
