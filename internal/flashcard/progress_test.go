package flashcard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordcards/internal/flashcard"
	"github.com/vytor/wordcards/internal/models"
)

func TestSummarize(t *testing.T) {
	s := flashcard.Summarize(sampleCards())
	assert.Equal(t, flashcard.Summary{Total: 5, Learned: 2, Remaining: 3, Percent: 40}, s)
}

func TestSummarize_EmptyDeck(t *testing.T) {
	assert.Equal(t, flashcard.Summary{}, flashcard.Summarize(nil))
}

func TestSummarize_Rounds(t *testing.T) {
	cards := []models.WordCard{{Learned: true}, {}, {}}
	assert.Equal(t, 33, flashcard.Summarize(cards).Percent)

	cards = append(cards, models.WordCard{Learned: true}, models.WordCard{Learned: true})
	assert.Equal(t, 60, flashcard.Summarize(cards).Percent)
}

func TestCategoryProgress(t *testing.T) {
	categories := []models.Category{
		{ID: 1, Name: "Животные"},
		{ID: 2, Name: "Еда"},
		{ID: 9, Name: "Пусто"},
	}

	stats := flashcard.CategoryProgress(sampleCards(), categories)
	require.Len(t, stats, 3)

	assert.Equal(t, "Животные", stats[0].Category.Name)
	assert.Equal(t, 2, stats[0].Total)
	assert.Equal(t, 1, stats[0].Learned)
	assert.Equal(t, 50, stats[0].Percent)

	assert.Equal(t, 1, stats[1].Total)
	assert.Equal(t, 0, stats[1].Percent)

	assert.Equal(t, flashcard.Summary{}, stats[2].Summary)
}
