package view

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking/internal/form"
	"github.com/iliyamo/venue-booking/internal/schedule"
)

func render(t *testing.T, name string, page Page) string {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, page, nil))
	return buf.String()
}

func TestEveryTemplateParses(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	for _, name := range []string{
		"pages/home", "pages/venues", "pages/artists", "pages/search", "pages/venue", "pages/artist",
		"pages/shows", "pages/venue_form", "pages/artist_form", "pages/show_form",
		"errors/404", "errors/500", "errors/error",
	} {
		assert.Contains(t, r.templates, name)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, "pages/nope", Page{}, nil))
}

func TestRenderVenuesWithFlash(t *testing.T) {
	out := render(t, "pages/venues", Page{
		Title:   "Venues",
		Flashes: []string{"Venue The Musical Hop was successfully listed!"},
		Content: []schedule.Area{{
			City:  "San Francisco",
			State: "CA",
			Venues: []schedule.EntitySummary{
				{ID: 1, Name: "The Musical Hop", NumUpcomingShows: 1},
			},
		}},
	})
	assert.Contains(t, out, "Venue The Musical Hop was successfully listed!")
	assert.Contains(t, out, "San Francisco, CA")
	assert.Contains(t, out, `<a href="/venues/1">The Musical Hop</a>`)
	assert.Contains(t, out, "1 upcoming show<")
}

func TestRenderSearch(t *testing.T) {
	out := render(t, "pages/search", Page{Content: SearchPage{
		Term: "band",
		Base: "/artists",
		Result: schedule.SearchResult{Count: 1, Data: []schedule.EntitySummary{
			{ID: 6, Name: "The Wild Sax Band"},
		}},
	}})
	assert.Contains(t, out, `Number of search results for "band": 1`)
	assert.Contains(t, out, `<a href="/artists/6">The Wild Sax Band</a>`)
}

func TestRenderVenueFormPrefill(t *testing.T) {
	out := render(t, "pages/venue_form", Page{Content: FormPage{
		ID:     1,
		Action: "/venues/1/edit",
		Form:   form.VenueForm{Name: "The Musical Hop", State: "CA", Genres: []string{"Jazz"}, SeekingTalent: "y"},
	}})
	assert.Contains(t, out, `value="The Musical Hop"`)
	assert.Contains(t, out, `<option value="CA" selected>`)
	assert.Contains(t, out, `<option value="Jazz" selected>`)
	assert.Contains(t, out, `value="y" checked`)
}

func TestDatetime(t *testing.T) {
	ts := time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)
	assert.Equal(t, "Tuesday May 21, 2019 at 9:30PM", Datetime(ts, "full"))
	assert.Equal(t, "Tue May 21, 2019 9:30PM", Datetime(ts, "medium"))
	assert.Equal(t, "Tue May 21, 2019 9:30PM", Datetime("2019-05-21 21:30:00", "medium"))
	assert.Equal(t, "soon", Datetime("soon", "full"))
}
