package remote

import (
	"encoding/json"
	"strings"

	"github.com/vytor/wordcards/internal/models"
)

type cardPayload struct {
	Russian        string `json:"russian"`
	RussianExample string `json:"russianExample"`
	English        string `json:"english"`
	EnglishExample string `json:"englishExample"`
	CategoryID     *int64 `json:"categoryId"`
	Course         *int   `json:"course,omitempty"`
}

// newCardPayload sends a zero category as null so the card stays
// uncategorised.
func newCardPayload(d models.CardDraft) cardPayload {
	p := cardPayload{
		Russian:        d.Russian,
		RussianExample: d.RussianExample,
		English:        d.English,
		EnglishExample: d.EnglishExample,
		Course:         d.Course,
	}
	if d.CategoryID > 0 {
		id := d.CategoryID
		p.CategoryID = &id
	}
	return p
}

type updateCardPayload struct {
	cardPayload
	CardID int64 `json:"cardId"`
	ID     int64 `json:"id"`
}

type learnedPayload struct {
	CardID  int64 `json:"cardId"`
	Learned bool  `json:"learned"`
}

type deleteCardPayload struct {
	CardID int64 `json:"cardId"`
}

type attachPayload struct {
	GroupID int64   `json:"groupId"`
	CardIDs []int64 `json:"cardIds"`
}

type translatePayload struct {
	Russian string `json:"russian"`
}

// errorMessage extracts the "error" field of a failure body, if any.
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Error)
}
