package worker

import (
	"context"

	"github.com/vytor/wordcards/internal/models"
)

// CardImporter is the subset of services.ImportService the import job needs.
type CardImporter interface {
	ImportCards(ctx context.Context, user models.User, drafts []models.CardDraft) models.ImportResult
}
