package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordcards/internal/models"
)

// MockRemoteClient is a mock implementation of remote.ClientInterface
type MockRemoteClient struct {
	mock.Mock
}

func (m *MockRemoteClient) Authenticate(ctx context.Context, mode models.AuthMode, username, password string) (*models.User, error) {
	args := m.Called(ctx, mode, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRemoteClient) ListCategories(ctx context.Context, user models.User) ([]models.Category, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockRemoteClient) CreateCategory(ctx context.Context, user models.User, draft models.CategoryDraft) error {
	args := m.Called(ctx, user, draft)
	return args.Error(0)
}

func (m *MockRemoteClient) ListCards(ctx context.Context, user models.User, groupID *int64) ([]models.WordCard, error) {
	args := m.Called(ctx, user, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WordCard), args.Error(1)
}

func (m *MockRemoteClient) CreateCard(ctx context.Context, user models.User, draft models.CardDraft) error {
	args := m.Called(ctx, user, draft)
	return args.Error(0)
}

func (m *MockRemoteClient) UpdateCard(ctx context.Context, user models.User, draft models.CardDraft) error {
	args := m.Called(ctx, user, draft)
	return args.Error(0)
}

func (m *MockRemoteClient) SetLearned(ctx context.Context, user models.User, cardID int64, learned bool) error {
	args := m.Called(ctx, user, cardID, learned)
	return args.Error(0)
}

func (m *MockRemoteClient) DeleteCard(ctx context.Context, user models.User, cardID int64) error {
	args := m.Called(ctx, user, cardID)
	return args.Error(0)
}

func (m *MockRemoteClient) ListGroups(ctx context.Context, user models.User) ([]models.Group, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Group), args.Error(1)
}

func (m *MockRemoteClient) CreateGroup(ctx context.Context, user models.User, draft models.GroupDraft) error {
	args := m.Called(ctx, user, draft)
	return args.Error(0)
}

func (m *MockRemoteClient) AddCardsToGroup(ctx context.Context, user models.User, groupID int64, cardIDs []int64) error {
	args := m.Called(ctx, user, groupID, cardIDs)
	return args.Error(0)
}

func (m *MockRemoteClient) DeleteGroup(ctx context.Context, user models.User, groupID int64) error {
	args := m.Called(ctx, user, groupID)
	return args.Error(0)
}

func (m *MockRemoteClient) Translate(ctx context.Context, russian string) (models.Translation, error) {
	args := m.Called(ctx, russian)
	return args.Get(0).(models.Translation), args.Error(1)
}

func (m *MockRemoteClient) ListAccounts(ctx context.Context, user models.User) ([]models.UserAccount, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserAccount), args.Error(1)
}
