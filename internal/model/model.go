package model

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Timezone     string // IANA id; empty = not chosen yet
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Priority of an event. Ordering is by Weight, not lexical.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

func (p Priority) Valid() bool {
	return p.Weight() != 0
}

// Default categories; users may add their own (see Category).
var DefaultCategories = []string{"Work", "Personal", "Health", "Education"}

// Event is a single dated entry on a user's schedule.
//
// Date is the absolute instant of midnight in the timezone that was active
// when the event's calendar day was chosen; it is stored in UTC and never
// re-anchored afterwards. Time is a timezone-naive "HH:MM" wall-clock
// string, empty when the event has no time.
type Event struct {
	ID          string
	UserID      string
	Title       string
	Category    string
	Priority    Priority
	Date        time.Time
	Time        string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Category is a user-defined event category with a display color.
type Category struct {
	ID        string
	UserID    string
	Name      string
	Color     string // hex, e.g. "#3b82f6"
	CreatedAt time.Time
	UpdatedAt time.Time
}
