package model

import "time"

// Show links one artist to one venue at one instant.  It has no lifecycle
// of its own beyond its parents.
type Show struct {
	ID        uint64    `db:"id"`
	ArtistID  uint64    `db:"artist_id"`
	VenueID   uint64    `db:"venue_id"`
	StartTime time.Time `db:"start_time"`
}

// ShowListing is a show joined with the display fields of both parents, as
// listed on the shows index.
type ShowListing struct {
	ID              uint64    `db:"id"`
	VenueID         uint64    `db:"venue_id"`
	VenueName       string    `db:"venue_name"`
	ArtistID        uint64    `db:"artist_id"`
	ArtistName      string    `db:"artist_name"`
	ArtistImageLink string    `db:"artist_image_link"`
	StartTime       time.Time `db:"start_time"`
}
