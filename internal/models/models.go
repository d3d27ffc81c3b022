package models

import "time"

// Tab is the active view of the study application.
type Tab string

const (
	TabCards      Tab = "cards"
	TabDictionary Tab = "dictionary"
	TabCategories Tab = "categories"
	TabGroups     Tab = "groups"
	TabProgress   Tab = "progress"
)

// ParseTab falls back to the card viewer for unknown values.
func ParseTab(s string) Tab {
	switch Tab(s) {
	case TabDictionary, TabCategories, TabGroups, TabProgress:
		return Tab(s)
	default:
		return TabCards
	}
}

// SortKey orders card listings.
type SortKey string

const (
	SortNone     SortKey = ""
	SortRussian  SortKey = "russian"
	SortEnglish  SortKey = "english"
	SortCategory SortKey = "category"
	SortCourse   SortKey = "course"
)

func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortRussian, SortEnglish, SortCategory, SortCourse:
		return SortKey(s)
	default:
		return SortNone
	}
}

// NotificationLevel classifies a transient user-visible message.
type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
	LevelInfo    NotificationLevel = "info"
)

// Notification is a transient toast raised by the controller.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
	At      time.Time         `json:"at"`
}

// StorageEntry is one durable key-value pair scoped to a browser client.
type StorageEntry struct {
	ClientID  string    `db:"client_id"`
	Key       string    `db:"key"`
	Value     []byte    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ImportResult summarises a bulk card import.
type ImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}
