// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// ListingQueueName is the durable queue every listing event is published to.
const ListingQueueName = "listing.created"

// Listing kinds.
const (
	KindVenue  = "venue"
	KindArtist = "artist"
	KindShow   = "show"
)

// ListingEvent is published after a venue, artist or show is stored. It
// carries enough for downstream consumers to log or notify without querying
// the primary database.
type ListingEvent struct {
	Kind      string `json:"kind"`
	ID        uint64 `json:"id"`
	Name      string `json:"name,omitempty"`
	VenueID   uint64 `json:"venue_id,omitempty"`
	ArtistID  uint64 `json:"artist_id,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	ListedAt  string `json:"listed_at"`
}
