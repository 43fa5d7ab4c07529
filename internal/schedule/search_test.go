package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(r SearchResult) []string {
	out := make([]string, 0, len(r.Data))
	for _, d := range r.Data {
		out = append(out, d.Name)
	}
	return out
}

func TestFilterVenues(t *testing.T) {
	venues := []EntitySummary{
		{ID: 1, Name: "The Musical Hop", NumUpcomingShows: 0},
		{ID: 2, Name: "The Dueling Pianos Bar"},
		{ID: 3, Name: "Park Square Live Music & Coffee", NumUpcomingShows: 1},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"Hop", []string{"The Musical Hop"}},
		{"hop", []string{"The Musical Hop"}},
		{"Music", []string{"The Musical Hop", "Park Square Live Music & Coffee"}},
		{"", []string{"The Musical Hop", "The Dueling Pianos Bar", "Park Square Live Music & Coffee"}},
		{"jazz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := Filter(venues, tt.query)
			assert.Equal(t, tt.want, names(r))
			assert.Equal(t, len(tt.want), r.Count)
		})
	}
}

func TestFilterArtists(t *testing.T) {
	artists := []EntitySummary{
		{ID: 4, Name: "Guns N Petals"},
		{ID: 5, Name: "Matt Quevado"},
		{ID: 6, Name: "The Wild Sax Band"},
	}

	assert.Equal(t, []string{"Guns N Petals", "Matt Quevado", "The Wild Sax Band"}, names(Filter(artists, "A")))
	assert.Equal(t, []string{"The Wild Sax Band"}, names(Filter(artists, "band")))
}

func TestFilterKeepsCounts(t *testing.T) {
	r := Filter([]EntitySummary{{ID: 1, Name: "The Musical Hop", NumUpcomingShows: 3}}, "musical")
	assert.Equal(t, 3, r.Data[0].NumUpcomingShows)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%hop%", LikePattern("Hop"))
	assert.Equal(t, "%%", LikePattern(""))
	assert.Equal(t, `%100!%!_off!!%`, LikePattern(`100%_OFF!`))
	assert.Equal(t, `%a\b%`, LikePattern(`A\b`))
}
