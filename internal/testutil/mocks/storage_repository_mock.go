package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordcards/internal/models"
)

// MockStorageRepository is a mock implementation of repository.StorageRepository
type MockStorageRepository struct {
	mock.Mock
}

func (m *MockStorageRepository) Get(ctx context.Context, clientID, key string) (*models.StorageEntry, error) {
	args := m.Called(ctx, clientID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StorageEntry), args.Error(1)
}

func (m *MockStorageRepository) Set(ctx context.Context, clientID, key string, value []byte) error {
	args := m.Called(ctx, clientID, key, value)
	return args.Error(0)
}

func (m *MockStorageRepository) Delete(ctx context.Context, clientID, key string) error {
	args := m.Called(ctx, clientID, key)
	return args.Error(0)
}

func (m *MockStorageRepository) Touch(ctx context.Context, clientID, key string) (bool, error) {
	args := m.Called(ctx, clientID, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorageRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
