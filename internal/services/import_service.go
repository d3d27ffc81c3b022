package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vytor/wordcards/internal/errors"
	"github.com/vytor/wordcards/internal/logger"
	"github.com/vytor/wordcards/internal/models"
	"github.com/vytor/wordcards/internal/remote"
)

// ImportService posts spreadsheet rows to the cards resource
type ImportService interface {
	ImportCards(ctx context.Context, user models.User, drafts []models.CardDraft) models.ImportResult
}

type importService struct {
	client remote.ClientInterface
}

// NewImportService creates a new ImportService
func NewImportService(client remote.ClientInterface) ImportService {
	return &importService{client: client}
}

// ImportCards creates one card per draft. Rows without russian or english
// text are skipped; a failed row does not stop the rest.
func (s *importService) ImportCards(ctx context.Context, user models.User, drafts []models.CardDraft) models.ImportResult {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"user_id": user.ID,
		"rows":    len(drafts),
	})
	log.Info("importing cards")

	var res models.ImportResult
	for i, d := range drafts {
		if ctx.Err() != nil {
			res.Failed += len(drafts) - i
			res.Errors = append(res.Errors, ctx.Err().Error())
			break
		}
		if strings.TrimSpace(d.Russian) == "" || strings.TrimSpace(d.English) == "" {
			res.Skipped++
			continue
		}
		if err := s.client.CreateCard(ctx, user, d); err != nil {
			log.Warn("row %d failed: %v", i+1, err)
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %s", d.Russian, errors.UserMessage(err, "Could not add card")))
			continue
		}
		res.Created++
	}

	log.Info("import finished: created=%d skipped=%d failed=%d", res.Created, res.Skipped, res.Failed)
	return res
}
