package flashcard

import (
	"math/rand/v2"

	"github.com/vytor/wordcards/internal/models"
)

// NextIndex advances circularly. It returns 0 for an empty deck.
func NextIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i + 1) % n
}

// PreviousIndex retreats circularly, wrapping 0 to n-1.
func PreviousIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i - 1 + n) % n
}

// ClampIndex keeps i inside [0, n-1], or 0 when n is 0.
func ClampIndex(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// IndexOf returns the position of the card with id, or -1.
func IndexOf(cards []models.WordCard, id int64) int {
	for i, c := range cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Shuffle returns a shuffled copy of cards.
func Shuffle(cards []models.WordCard, rng *rand.Rand) []models.WordCard {
	out := make([]models.WordCard, len(cards))
	copy(out, cards)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
