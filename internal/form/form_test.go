package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking/internal/model"
)

func validVenue() VenueForm {
	return VenueForm{
		Name:          "The Musical Hop",
		City:          "San Francisco",
		State:         "CA",
		Address:       "1015 Folsom Street",
		Phone:         "123-123-1234",
		ImageLink:     "https://images.unsplash.com/photo-1543900694",
		Website:       "https://www.themusicalhop.com",
		Genres:        []string{"Jazz", "Reggae"},
		SeekingTalent: "y",
	}
}

func TestVenueFormValid(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(validVenue()))
}

func TestVenueFormInvalid(t *testing.T) {
	v := NewValidator()
	tests := []struct {
		name   string
		mutate func(*VenueForm)
		want   string
	}{
		{"missing name", func(f *VenueForm) { f.Name = "" }, "name is required"},
		{"bad state", func(f *VenueForm) { f.State = "ZZ" }, `"ZZ" is not a valid state`},
		{"bad genre", func(f *VenueForm) { f.Genres = []string{"Jazz", "Polka"} }, `"Polka" is not a valid genre`},
		{"no genres", func(f *VenueForm) { f.Genres = []string{} }, "genres needs at least 1 entry"},
		{"bad url", func(f *VenueForm) { f.Website = "not a url" }, "website_link must be a valid URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validVenue()
			tt.mutate(&f)
			err := v.Validate(f)
			require.Error(t, err)
			assert.Contains(t, Messages(err), tt.want)
		})
	}
}

func TestVenueFormModelRoundTrip(t *testing.T) {
	f := validVenue()
	f.Name = "  The Musical Hop "
	m := f.ToModel()
	assert.Equal(t, "The Musical Hop", m.Name)
	assert.True(t, m.SeekingTalent)
	assert.Equal(t, model.Genres{"Jazz", "Reggae"}, m.Genres)

	back := VenueFormFrom(m)
	assert.Equal(t, "y", back.SeekingTalent)
	assert.Equal(t, f.Genres, back.Genres)
}

func TestCheckboxValues(t *testing.T) {
	for _, on := range []string{"y", "on", "true", "1", "Yes"} {
		assert.True(t, checked(on), on)
	}
	for _, off := range []string{"", "n", "off", "false", "0"} {
		assert.False(t, checked(off), off)
	}
}

func TestArtistForm(t *testing.T) {
	v := NewValidator()
	f := ArtistForm{
		Name:   "Guns N Petals",
		City:   "San Francisco",
		State:  "CA",
		Genres: []string{"Rock n Roll"},
	}
	require.NoError(t, v.Validate(f))
	m := f.ToModel()
	assert.False(t, m.SeekingVenue)
	assert.Equal(t, model.Genres{"Rock n Roll"}, m.Genres)

	f.City = ""
	assert.Contains(t, Messages(v.Validate(f)), "city is required")
}

func TestShowForm(t *testing.T) {
	v := NewValidator()
	f := ShowForm{ArtistID: 4, VenueID: 1, StartTime: "2035-04-01 20:00:00"}
	require.NoError(t, v.Validate(f))

	s, err := f.ToModel()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC), s.StartTime)

	f.StartTime = "next tuesday"
	assert.Contains(t, Messages(v.Validate(f)), "start_time must look like 2006-01-02 15:04:05")

	f = ShowForm{StartTime: "2035-04-01 20:00:00"}
	msgs := Messages(v.Validate(f))
	assert.Contains(t, msgs, "artist_id is required")
	assert.Contains(t, msgs, "venue_id is required")
}

func TestParseStartTime(t *testing.T) {
	want := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)
	for _, in := range []string{"2035-04-01 20:00:00", "2035-04-01T20:00", "2035-04-01T22:00:00+02:00"} {
		got, err := ParseStartTime(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
		assert.Equal(t, time.UTC, got.Location())
	}
	_, err := ParseStartTime("")
	assert.Error(t, err)
}
