// Package schedule classifies shows as past or upcoming relative to a
// reference instant and aggregates them for venue and artist pages.
//
// Every function takes "now" explicitly; nothing in this package reads the
// clock.
package schedule

import "time"

// StartTimeLayout is the string form of a show's start time handed to
// templates.
const StartTimeLayout = "2006-01-02 15:04:05"

// ShowRow is one show of a venue or artist joined with the display fields
// of the other side: the artist for a venue page, the venue for an artist
// page.
type ShowRow struct {
	ShowID               uint64    `db:"show_id"`
	CounterpartID        uint64    `db:"counterpart_id"`
	CounterpartName      string    `db:"counterpart_name"`
	CounterpartImageLink string    `db:"counterpart_image_link"`
	StartTime            time.Time `db:"start_time"`
}

// ShowSummary is the element of a past or upcoming list.
type ShowSummary struct {
	ID        uint64
	Name      string
	ImageLink string
	StartTime string
}

// Partition holds an entity's shows split around a reference instant.
type Partition struct {
	PastShows          []ShowSummary
	UpcomingShows      []ShowSummary
	PastShowsCount     int
	UpcomingShowsCount int
}

// IsUpcoming reports whether a show starting at start is upcoming at now.
// A show starting exactly at now is upcoming.
func IsUpcoming(start, now time.Time) bool {
	return !start.Before(now)
}

// Split partitions rows around now. Input order is preserved inside each
// list and the lists are never nil.
func Split(rows []ShowRow, now time.Time) Partition {
	p := Partition{
		PastShows:     []ShowSummary{},
		UpcomingShows: []ShowSummary{},
	}
	for _, r := range rows {
		s := ShowSummary{
			ID:        r.CounterpartID,
			Name:      r.CounterpartName,
			ImageLink: r.CounterpartImageLink,
			StartTime: r.StartTime.UTC().Format(StartTimeLayout),
		}
		if IsUpcoming(r.StartTime, now) {
			p.UpcomingShows = append(p.UpcomingShows, s)
		} else {
			p.PastShows = append(p.PastShows, s)
		}
	}
	p.PastShowsCount = len(p.PastShows)
	p.UpcomingShowsCount = len(p.UpcomingShows)
	return p
}

// CountUpcoming returns how many rows are upcoming at now.
func CountUpcoming(rows []ShowRow, now time.Time) int {
	n := 0
	for _, r := range rows {
		if IsUpcoming(r.StartTime, now) {
			n++
		}
	}
	return n
}
