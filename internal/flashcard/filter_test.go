package flashcard_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordcards/internal/flashcard"
	"github.com/vytor/wordcards/internal/models"
)

func intPtr(v int) *int    { return &v }
func idPtr(v int64) *int64 { return &v }

func sampleCards() []models.WordCard {
	return []models.WordCard{
		{ID: 1, Russian: "Кот", English: "Cat", CategoryID: 1, CategoryName: "Животные", Course: intPtr(2)},
		{ID: 2, Russian: "Яблоко", English: "Apple", CategoryID: 2, CategoryName: "Еда"},
		{ID: 3, Russian: "Самолёт", English: "Airplane", CategoryID: 3, CategoryName: "Путешествия", Course: intPtr(3), Learned: true},
		{ID: 4, Russian: "Работа", English: "Work", Course: intPtr(1)},
		{ID: 5, Russian: "Собака", English: "Dog", CategoryID: 1, CategoryName: "Животные", Course: intPtr(2), Learned: true},
	}
}

var words = []string{"Кот", "Собака", "Дом", "Apple", "cat", "Dog", "house", "Мир", "Tree", "Окно", "window", "Лес"}

// randomCards builds a deterministic pseudo-random deck.
func randomCards(rng *rand.Rand, n int) []models.WordCard {
	cards := make([]models.WordCard, n)
	for i := range cards {
		cards[i] = models.WordCard{
			ID:         int64(i + 1),
			Russian:    words[rng.IntN(len(words))],
			English:    words[rng.IntN(len(words))],
			CategoryID: int64(rng.IntN(4)),
		}
		if c := rng.IntN(6); c > 0 {
			cards[i].Course = intPtr(c)
		}
	}
	return cards
}

func ids(cards []models.WordCard) []int64 {
	out := make([]int64, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestDeriveFilteredCards_EmptyFilterReturnsAll(t *testing.T) {
	cards := sampleCards()

	got := flashcard.DeriveFilteredCards(cards, flashcard.Filter{})
	assert.Equal(t, cards, got)

	got = flashcard.DeriveFilteredCards(cards, flashcard.Filter{SortBy: models.SortCourse})
	assert.Len(t, got, len(cards))
	assert.ElementsMatch(t, ids(cards), ids(got))
}

func TestDeriveFilteredCards_SearchIsCaseInsensitiveOnBothFields(t *testing.T) {
	cards := sampleCards()

	got := flashcard.DeriveFilteredCards(cards, flashcard.Filter{Query: "CAT"})
	assert.Equal(t, []int64{1}, ids(got))

	got = flashcard.DeriveFilteredCards(cards, flashcard.Filter{Query: "со"})
	assert.Equal(t, []int64{5}, ids(got))

	got = flashcard.DeriveFilteredCards(cards, flashcard.Filter{Query: "a"})
	assert.Equal(t, []int64{1, 2, 3}, ids(got))
}

func TestDeriveFilteredCards_SearchProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 50; round++ {
		cards := randomCards(rng, 30)
		word := []rune(words[rng.IntN(len(words))])
		query := string(word[:1+rng.IntN(2)])

		got := flashcard.DeriveFilteredCards(cards, flashcard.Filter{Query: query})
		for _, c := range got {
			q := strings.ToLower(query)
			assert.True(t,
				strings.Contains(strings.ToLower(c.Russian), q) || strings.Contains(strings.ToLower(c.English), q),
				"card %d does not contain %q", c.ID, query)
		}
	}
}

func TestDeriveFilteredCards_CategoryFilter(t *testing.T) {
	cards := sampleCards()

	got := flashcard.DeriveFilteredCards(cards, flashcard.Filter{CategoryID: idPtr(1)})
	assert.Equal(t, []int64{1, 5}, ids(got))

	got = flashcard.DeriveFilteredCards(cards, flashcard.Filter{CategoryID: idPtr(0)})
	assert.Len(t, got, len(cards), "zero category disables the filter")
}

func TestDeriveFilteredCards_CourseFilterTreatsAbsentAsOne(t *testing.T) {
	cards := sampleCards()

	got := flashcard.DeriveFilteredCards(cards, flashcard.Filter{Course: intPtr(1)})
	assert.Equal(t, []int64{2, 4}, ids(got))
}

func TestDeriveFilteredCards_CourseSortNonDecreasing(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for round := 0; round < 50; round++ {
		cards := randomCards(rng, 25)

		got := flashcard.DeriveFilteredCards(cards, flashcard.Filter{SortBy: models.SortCourse})
		require.Len(t, got, len(cards))
		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, got[i-1].CourseOrDefault(), got[i].CourseOrDefault())
			if got[i-1].CourseOrDefault() == got[i].CourseOrDefault() {
				assert.Less(t, got[i-1].ID, got[i].ID, "sort must be stable")
			}
		}
	}
}

func TestDeriveFilteredCards_TextSorts(t *testing.T) {
	cards := sampleCards()

	got := flashcard.DeriveFilteredCards(cards, flashcard.Filter{SortBy: models.SortRussian})
	assert.Equal(t, []string{"Кот", "Работа", "Самолёт", "Собака", "Яблоко"}, russian(got))

	got = flashcard.DeriveFilteredCards(cards, flashcard.Filter{SortBy: models.SortEnglish})
	assert.Equal(t, []int64{3, 2, 1, 5, 4}, ids(got))
}

func TestDeriveFilteredCards_DoesNotMutateInput(t *testing.T) {
	cards := sampleCards()
	before := ids(cards)

	_ = flashcard.DeriveFilteredCards(cards, flashcard.Filter{SortBy: models.SortEnglish})
	assert.Equal(t, before, ids(cards))
}

func TestDeriveFilteredCards_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	cards := randomCards(rng, 40)
	f := flashcard.Filter{Query: "o", SortBy: models.SortRussian}

	assert.Equal(t, flashcard.DeriveFilteredCards(cards, f), flashcard.DeriveFilteredCards(cards, f))
}

func russian(cards []models.WordCard) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Russian
	}
	return out
}
