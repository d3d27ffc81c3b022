package worker

import (
	"context"
	"fmt"

	"github.com/vytor/wordcards/internal/models"
)

// ImportCardsJob posts a batch of spreadsheet rows and reports the outcome
// through Done.
type ImportCardsJob struct {
	Importer CardImporter
	User     models.User
	Drafts   []models.CardDraft
	Done     func(models.ImportResult)
}

func (j *ImportCardsJob) Name() string {
	return fmt.Sprintf("import-cards:%d", j.User.ID)
}

func (j *ImportCardsJob) Run(ctx context.Context) error {
	res := j.Importer.ImportCards(ctx, j.User, j.Drafts)
	if j.Done != nil {
		j.Done(res)
	}
	if res.Created == 0 && res.Failed > 0 {
		return fmt.Errorf("all %d rows failed", res.Failed)
	}
	return nil
}
