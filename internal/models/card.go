package models

// WordCard is a russian/english word pair as served by the cards resource.
// CategoryName and CategoryColor are denormalised at fetch time.
type WordCard struct {
	ID             int64  `json:"id"`
	Russian        string `json:"russian"`
	RussianExample string `json:"russianExample"`
	English        string `json:"english"`
	EnglishExample string `json:"englishExample"`
	CategoryID     int64  `json:"categoryId"`
	CategoryName   string `json:"categoryName"`
	CategoryColor  string `json:"categoryColor"`
	Learned        bool   `json:"learned"`
	Course         *int   `json:"course,omitempty"`
	GroupID        *int64 `json:"groupId,omitempty"`
}

// HasCategory reports whether the card is attached to a real category.
// A zero id means "no category".
func (c WordCard) HasCategory() bool {
	return c.CategoryID > 0
}

// CourseOrDefault returns the card's course, treating an absent course as 1.
func (c WordCard) CourseOrDefault() int {
	if c.Course == nil || *c.Course == 0 {
		return 1
	}
	return *c.Course
}

// CardDraft is the unsaved form state for a new or edited card.
// ID is only set while editing.
type CardDraft struct {
	ID             int64  `json:"id,omitempty"`
	Russian        string `json:"russian"`
	RussianExample string `json:"russianExample"`
	English        string `json:"english"`
	EnglishExample string `json:"englishExample"`
	CategoryID     int64  `json:"categoryId"`
	Course         *int   `json:"course,omitempty"`
}

// DraftFromCard copies the editable fields of a card into a draft.
func DraftFromCard(c WordCard) CardDraft {
	return CardDraft{
		ID:             c.ID,
		Russian:        c.Russian,
		RussianExample: c.RussianExample,
		English:        c.English,
		EnglishExample: c.EnglishExample,
		CategoryID:     c.CategoryID,
		Course:         c.Course,
	}
}

// Translation is the AI-populated part of a card draft.
type Translation struct {
	English        string `json:"english"`
	RussianExample string `json:"russianExample"`
	EnglishExample string `json:"englishExample"`
}

// Apply merges a translation into the draft.
func (d CardDraft) Apply(t Translation) CardDraft {
	d.English = t.English
	d.RussianExample = t.RussianExample
	d.EnglishExample = t.EnglishExample
	return d
}
