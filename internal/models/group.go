package models

// Group is an admin-curated subset of cards. CardCount is computed by the
// backend at fetch time.
type Group struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	CreatedAt   string `json:"createdAt"`
	CardCount   int    `json:"cardCount"`
	Course      *int   `json:"course,omitempty"`
}

type GroupDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Course      *int   `json:"course,omitempty"`
}

const DefaultGroupColor = "#3b82f6"

// Courses lists the course numbers selectable for groups and filters.
var Courses = []int{1, 2, 3, 4, 5}

func DefaultGroupDraft() GroupDraft {
	return GroupDraft{Color: DefaultGroupColor}
}
