package jobs

import (
	"github.com/vytor/wordcards/internal/errors"
	"github.com/vytor/wordcards/internal/models"
	"github.com/vytor/wordcards/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	importPool *worker.Pool
	importer   worker.CardImporter
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(importPool *worker.Pool, importer worker.CardImporter) JobQueue {
	return &WorkerQueue{
		importPool: importPool,
		importer:   importer,
	}
}

func (q *WorkerQueue) EnqueueImport(user models.User, drafts []models.CardDraft, done func(models.ImportResult)) error {
	if len(drafts) == 0 {
		return errors.NewValidationError("The spreadsheet has no rows")
	}
	err := q.importPool.Submit(&worker.ImportCardsJob{
		Importer: q.importer,
		User:     user,
		Drafts:   drafts,
		Done:     done,
	})
	if err != nil {
		return errors.NewValidationError("Import queue is busy, try again later")
	}
	return nil
}
