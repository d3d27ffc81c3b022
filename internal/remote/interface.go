package remote

import (
	"context"

	"github.com/vytor/wordcards/internal/models"
)

// ClientInterface defines the backend operations the controller depends on.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	Authenticate(ctx context.Context, mode models.AuthMode, username, password string) (*models.User, error)

	ListCategories(ctx context.Context, user models.User) ([]models.Category, error)
	CreateCategory(ctx context.Context, user models.User, draft models.CategoryDraft) error

	ListCards(ctx context.Context, user models.User, groupID *int64) ([]models.WordCard, error)
	CreateCard(ctx context.Context, user models.User, draft models.CardDraft) error
	UpdateCard(ctx context.Context, user models.User, draft models.CardDraft) error
	SetLearned(ctx context.Context, user models.User, cardID int64, learned bool) error
	DeleteCard(ctx context.Context, user models.User, cardID int64) error

	ListGroups(ctx context.Context, user models.User) ([]models.Group, error)
	CreateGroup(ctx context.Context, user models.User, draft models.GroupDraft) error
	AddCardsToGroup(ctx context.Context, user models.User, groupID int64, cardIDs []int64) error
	DeleteGroup(ctx context.Context, user models.User, groupID int64) error

	Translate(ctx context.Context, russian string) (models.Translation, error)

	ListAccounts(ctx context.Context, user models.User) ([]models.UserAccount, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
