package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vytor/wordcards/internal/repository"
	"github.com/vytor/wordcards/internal/repository/sqlite"
	"github.com/vytor/wordcards/internal/testutil"
)

type StorageRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.StorageRepository
}

func (s *StorageRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewStorageRepository(s.db)
}

func (s *StorageRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StorageRepositorySuite) TestGetMissingReturnsNil() {
	entry, err := s.repo.Get(context.Background(), "client-a", "wordcards.user")
	s.Require().NoError(err)
	s.Assert().Nil(entry)
}

func (s *StorageRepositorySuite) TestSetAndGet() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Set(ctx, "client-a", "wordcards.user", []byte(`{"id":7}`)))

	entry, err := s.repo.Get(ctx, "client-a", "wordcards.user")
	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Assert().Equal("client-a", entry.ClientID)
	s.Assert().Equal(`{"id":7}`, string(entry.Value))
	s.Assert().WithinDuration(time.Now(), entry.UpdatedAt, time.Minute)
}

func (s *StorageRepositorySuite) TestSetOverwrites() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Set(ctx, "client-a", "k", []byte("one")))
	s.Require().NoError(s.repo.Set(ctx, "client-a", "k", []byte("two")))

	entry, err := s.repo.Get(ctx, "client-a", "k")
	s.Require().NoError(err)
	s.Assert().Equal("two", string(entry.Value))

	var count int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM client_storage`).Scan(&count))
	s.Assert().Equal(1, count)
}

func (s *StorageRepositorySuite) TestClientsAreIsolated() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Set(ctx, "client-a", "k", []byte("a")))
	s.Require().NoError(s.repo.Set(ctx, "client-b", "k", []byte("b")))
	s.Require().NoError(s.repo.Delete(ctx, "client-a", "k"))

	gone, err := s.repo.Get(ctx, "client-a", "k")
	s.Require().NoError(err)
	s.Assert().Nil(gone)

	kept, err := s.repo.Get(ctx, "client-b", "k")
	s.Require().NoError(err)
	s.Require().NotNil(kept)
	s.Assert().Equal("b", string(kept.Value))
}

func (s *StorageRepositorySuite) TestDeleteMissingIsNotAnError() {
	s.Assert().NoError(s.repo.Delete(context.Background(), "nobody", "k"))
}

func (s *StorageRepositorySuite) TestDeleteStale() {
	ctx := context.Background()
	old := time.Now().UTC().Add(-48 * time.Hour)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO client_storage (client_id, key, value, updated_at) VALUES (?, ?, ?, ?)`,
		"old-client", "wordcards.user", []byte("{}"), old)
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Set(ctx, "fresh-client", "wordcards.user", []byte("{}")))

	n, err := s.repo.DeleteStale(ctx, time.Now().Add(-24*time.Hour))
	s.Require().NoError(err)
	s.Assert().Equal(int64(1), n)

	entry, err := s.repo.Get(ctx, "fresh-client", "wordcards.user")
	s.Require().NoError(err)
	s.Assert().NotNil(entry)
}

func (s *StorageRepositorySuite) TestTouchRefreshesAgeOnly() {
	ctx := context.Background()
	old := time.Now().UTC().Add(-48 * time.Hour)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO client_storage (client_id, key, value, updated_at) VALUES (?, ?, ?, ?)`,
		"client-a", "wordcards.user", []byte(`{"id":7}`), old)
	s.Require().NoError(err)

	found, err := s.repo.Touch(ctx, "client-a", "wordcards.user")
	s.Require().NoError(err)
	s.Assert().True(found)

	n, err := s.repo.DeleteStale(ctx, time.Now().Add(-24*time.Hour))
	s.Require().NoError(err)
	s.Assert().Zero(n)

	entry, err := s.repo.Get(ctx, "client-a", "wordcards.user")
	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Assert().Equal(`{"id":7}`, string(entry.Value))
	s.Assert().WithinDuration(time.Now(), entry.UpdatedAt, time.Minute)
}

func (s *StorageRepositorySuite) TestTouchMissing() {
	found, err := s.repo.Touch(context.Background(), "nobody", "wordcards.user")
	s.Require().NoError(err)
	s.Assert().False(found)
}

func TestStorageRepositorySuite(t *testing.T) {
	suite.Run(t, new(StorageRepositorySuite))
}
