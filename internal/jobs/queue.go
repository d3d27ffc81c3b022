package jobs

import "github.com/vytor/wordcards/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	// EnqueueImport schedules a bulk card import. done runs on a worker
	// goroutine once every row has been attempted.
	EnqueueImport(user models.User, drafts []models.CardDraft, done func(models.ImportResult)) error
}
