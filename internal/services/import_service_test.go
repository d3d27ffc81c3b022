package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/vytor/wordcards/internal/errors"
	"github.com/vytor/wordcards/internal/models"
	"github.com/vytor/wordcards/internal/services"
	"github.com/vytor/wordcards/internal/testutil/mocks"
)

func TestImportService_ImportCards(t *testing.T) {
	client := new(mocks.MockRemoteClient)
	admin := models.User{ID: 1, Username: "admin", IsAdmin: true}

	cat := models.CardDraft{Russian: "Кот", English: "Cat"}
	dog := models.CardDraft{Russian: "Собака", English: "Dog"}
	client.On("CreateCard", mock.Anything, admin, cat).Return(nil)
	client.On("CreateCard", mock.Anything, admin, dog).Return(apperrors.NewRemoteError(409, "Card already exists"))

	res := services.NewImportService(client).ImportCards(context.Background(), admin, []models.CardDraft{
		cat,
		{Russian: "Дом"},
		dog,
	})

	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, []string{"Собака: Card already exists"}, res.Errors)
	client.AssertNumberOfCalls(t, "CreateCard", 2)
}

func TestImportService_StopsOnCancelledContext(t *testing.T) {
	client := new(mocks.MockRemoteClient)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := services.NewImportService(client).ImportCards(ctx, models.User{ID: 1}, []models.CardDraft{
		{Russian: "Кот", English: "Cat"},
		{Russian: "Дом", English: "House"},
	})

	assert.Equal(t, 2, res.Failed)
	client.AssertNotCalled(t, "CreateCard", mock.Anything, mock.Anything, mock.Anything)
}
