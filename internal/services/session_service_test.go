package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vytor/wordcards/internal/errors"
	"github.com/vytor/wordcards/internal/models"
	"github.com/vytor/wordcards/internal/repository/sqlite"
	"github.com/vytor/wordcards/internal/services"
	"github.com/vytor/wordcards/internal/testutil"
	"github.com/vytor/wordcards/internal/testutil/mocks"
)

var alice = models.User{ID: 7, Username: "alice"}

func TestSessionService_SaveThenLoadSurvivesNewService(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.MustClose(t, db)
	ctx := context.Background()

	user := models.User{ID: 7, Username: "alice"}
	require.NoError(t, services.NewSessionService(sqlite.NewStorageRepository(db)).Save(ctx, "client-1", user))

	// A fresh service over the same database stands in for a page reload.
	reloaded := services.NewSessionService(sqlite.NewStorageRepository(db))
	got, err := reloaded.Load(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, &user, got)

	other, err := reloaded.Load(ctx, "client-2")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestSessionService_StoredAsJSONUnderUserKey(t *testing.T) {
	repo := new(mocks.MockStorageRepository)
	repo.On("Set", mock.Anything, "c", services.SessionKey, []byte(`{"id":7,"username":"alice","isAdmin":false}`)).Return(nil)

	err := services.NewSessionService(repo).Save(context.Background(), "c", models.User{ID: 7, Username: "alice"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSessionService_Clear(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.MustClose(t, db)
	ctx := context.Background()
	svc := services.NewSessionService(sqlite.NewStorageRepository(db))

	require.NoError(t, svc.Save(ctx, "c", models.User{ID: 1, Username: "bob", IsAdmin: true}))
	require.NoError(t, svc.Clear(ctx, "c"))

	got, err := svc.Load(ctx, "c")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionService_UnreadableSessionIsSignedOut(t *testing.T) {
	repo := new(mocks.MockStorageRepository)
	repo.On("Get", mock.Anything, "c", services.SessionKey).
		Return(&models.StorageEntry{ClientID: "c", Key: services.SessionKey, Value: []byte("not json")}, nil)

	got, err := services.NewSessionService(repo).Load(context.Background(), "c")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionService_StorageFailureIsInternal(t *testing.T) {
	repo := new(mocks.MockStorageRepository)
	repo.On("Get", mock.Anything, "c", services.SessionKey).Return(nil, errors.New("disk I/O error"))

	_, err := services.NewSessionService(repo).Load(context.Background(), "c")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInternal))
}

func TestSessionService_PurgeStale(t *testing.T) {
	repo := new(mocks.MockStorageRepository)
	repo.On("DeleteStale", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		return time.Since(cutoff) > 23*time.Hour && time.Since(cutoff) < 25*time.Hour
	})).Return(int64(3), nil)

	n, err := services.NewSessionService(repo).PurgeStale(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	repo.AssertExpectations(t)
}

func TestSessionService_LoadKeepsActiveSessionFromPurge(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.MustClose(t, db)
	ctx := context.Background()
	svc := services.NewSessionService(sqlite.NewStorageRepository(db))

	require.NoError(t, svc.Save(ctx, "active", alice))
	require.NoError(t, svc.Save(ctx, "idle", alice))

	// Every gap between uses is shorter than the retention period, while
	// the time since login is longer.
	for i := 0; i < 5; i++ {
		time.Sleep(40 * time.Millisecond)
		got, err := svc.Load(ctx, "active")
		require.NoError(t, err)
		require.NotNil(t, got)
	}

	n, err := svc.PurgeStale(ctx, 100*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "only the idle session is purged")

	got, err := svc.Load(ctx, "active")
	require.NoError(t, err)
	assert.Equal(t, &alice, got)

	gone, err := svc.Load(ctx, "idle")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestSessionService_TouchFailureIsInternal(t *testing.T) {
	repo := new(mocks.MockStorageRepository)
	repo.On("Touch", mock.Anything, "c", services.SessionKey).Return(false, errors.New("database is locked"))

	err := services.NewSessionService(repo).Touch(context.Background(), "c")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInternal))
}

func TestSessionService_LoadSurvivesTouchFailure(t *testing.T) {
	repo := new(mocks.MockStorageRepository)
	repo.On("Get", mock.Anything, "c", services.SessionKey).
		Return(&models.StorageEntry{ClientID: "c", Key: services.SessionKey, Value: []byte(`{"id":7,"username":"alice"}`)}, nil)
	repo.On("Touch", mock.Anything, "c", services.SessionKey).Return(false, errors.New("database is locked"))

	got, err := services.NewSessionService(repo).Load(context.Background(), "c")
	require.NoError(t, err)
	assert.Equal(t, &alice, got)
	repo.AssertExpectations(t)
}
