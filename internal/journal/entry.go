// Package journal holds the diary domain model: entries, the derived
// date/time transform, and the on-this-day memory query.
package journal

import "time"

// Entry is one journal record. CreatedAt is stamped once at creation and
// carries the UTC offset in effect at that moment, so derived date/time
// fields stay on the writer's calendar day no matter where the record is
// later read.
type Entry struct {
	ID         string    `json:"id"`
	Title      string    `json:"title,omitempty"`
	Content    string    `json:"content"`
	ImagePaths []string  `json:"image_paths"`
	CreatedAt  time.Time `json:"created_at"`
}

// Enriched is an Entry plus the display fields derived from CreatedAt.
// Date and Time are never persisted; they are recomputed on every read.
type Enriched struct {
	Entry
	Date string `json:"date"`
	Time string `json:"time"`
}

// Enrich derives Date (YYYY-MM-DD) and Time (HH:MM, 24-hour) from the
// entry's creation instant. CreatedAt keeps the offset it was stored
// with, so formatting here never shifts an entry across a day boundary.
func Enrich(e Entry) Enriched {
	return Enriched{
		Entry: e,
		Date:  e.CreatedAt.Format("2006-01-02"),
		Time:  e.CreatedAt.Format("15:04"),
	}
}

// EnrichAll maps Enrich over entries, preserving order.
func EnrichAll(entries []Entry) []Enriched {
	out := make([]Enriched, len(entries))
	for i, e := range entries {
		out[i] = Enrich(e)
	}
	return out
}

// Update names exactly the fields a caller may change on an existing
// entry. Nil means "leave untouched". A non-nil ImagePaths replaces the
// stored set wholesale; incremental append is not supported.
type Update struct {
	Title      *string
	Content    *string
	ImagePaths []string
}
