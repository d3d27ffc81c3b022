package flashcard

import (
	"math"

	"github.com/vytor/wordcards/internal/models"
)

type Summary struct {
	Total     int
	Learned   int
	Remaining int
	Percent   int
}

// Summarize counts learned cards. Percent is rounded and 0 for an empty deck.
func Summarize(cards []models.WordCard) Summary {
	s := Summary{Total: len(cards)}
	for _, c := range cards {
		if c.Learned {
			s.Learned++
		}
	}
	s.Remaining = s.Total - s.Learned
	s.Percent = percent(s.Learned, s.Total)
	return s
}

type CategoryStat struct {
	Category models.Category
	Summary
}

// CategoryProgress summarises the cards of every category, in category order.
// Uncategorised cards are not attributed to any category.
func CategoryProgress(cards []models.WordCard, categories []models.Category) []CategoryStat {
	byCategory := make(map[int64][]models.WordCard, len(categories))
	for _, c := range cards {
		if c.HasCategory() {
			byCategory[c.CategoryID] = append(byCategory[c.CategoryID], c)
		}
	}

	stats := make([]CategoryStat, 0, len(categories))
	for _, cat := range categories {
		stats = append(stats, CategoryStat{Category: cat, Summary: Summarize(byCategory[cat.ID])})
	}
	return stats
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}
