package domain

import "time"

// Word represents a vocabulary entry owned by a user
type Word struct {
	ID            int64     `json:"id"`
	OwnerID       int64     `json:"owner_id"`
	Name          string    `json:"name"`
	Meaning       string    `json:"meaning"`
	Pronunciation string    `json:"pronunciation,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// WordInput holds user-supplied fields for creating or editing a word
type WordInput struct {
	Name          string
	Meaning       string
	Pronunciation string
}

// WordPage is one page of a user's word list
type WordPage struct {
	Words      []Word `json:"words"`
	Count      int    `json:"count"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
}

// AddedLabel returns a short label for when the word was created, relative to now
func (w Word) AddedLabel(now time.Time) string {
	date := w.CreatedAt.In(now.Location())

	if sameDay(date, now) {
		return "today"
	}

	if sameDay(date, now.AddDate(0, 0, -1)) {
		return "yesterday"
	}

	return date.Format("2 Jan 2006")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
