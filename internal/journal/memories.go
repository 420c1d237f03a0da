package journal

import "time"

// Memories returns every entry created on today's month and day in a
// strictly earlier year. Current-year matches are excluded, so an entry
// written today is never a memory of itself. There is no lower bound on
// how far back a match may be. Matches keep the insertion order of the
// input, not sorted by year.
func Memories(entries []Entry, today time.Time) []Entry {
	month, day, year := today.Month(), today.Day(), today.Year()

	var out []Entry
	for _, e := range entries {
		if e.CreatedAt.Month() == month && e.CreatedAt.Day() == day && e.CreatedAt.Year() < year {
			out = append(out, e)
		}
	}
	return out
}
