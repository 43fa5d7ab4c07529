package schedule

import "strings"

// EntitySummary is a venue or artist as listed on index and search pages.
type EntitySummary struct {
	ID               uint64 `db:"id"`
	Name             string `db:"name"`
	City             string `db:"city"`
	State            string `db:"state"`
	NumUpcomingShows int    `db:"num_upcoming_shows"`
}

// SearchResult is the outcome of a name search.
type SearchResult struct {
	Count int
	Data  []EntitySummary
}

// NameMatches reports whether query is a case-insensitive substring of
// name. The empty query matches every name.
func NameMatches(name, query string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

// Filter keeps the candidates whose name matches query, in their original
// order.
func Filter(candidates []EntitySummary, query string) SearchResult {
	out := make([]EntitySummary, 0, len(candidates))
	for _, c := range candidates {
		if NameMatches(c.Name, query) {
			out = append(out, c)
		}
	}
	return SearchResult{Count: len(out), Data: out}
}

// LikeEscape is the escape character LikePattern uses. Queries must say
// LIKE ? ESCAPE '!' so the pattern parses the same with or without the
// NO_BACKSLASH_ESCAPES SQL mode.
const LikeEscape = "!"

var likeEscaper = strings.NewReplacer(LikeEscape, LikeEscape+LikeEscape, `%`, LikeEscape+`%`, `_`, LikeEscape+`_`)

// LikePattern turns query into a lower-cased SQL LIKE pattern matching it
// as a literal substring.
func LikePattern(query string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
}
