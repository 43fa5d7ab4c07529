// Package service holds the directory's use cases: listing, searching and
// showing venues and artists with their shows split around an explicit
// reference instant, and creating, editing and deleting records.
package service

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/queue"
	"github.com/iliyamo/venue-booking/internal/schedule"
)

// VenueStore is the persistence the directory needs for venues.
type VenueStore interface {
	Create(ctx context.Context, v *model.Venue) error
	GetByID(ctx context.Context, id uint64) (*model.Venue, error)
	Update(ctx context.Context, v *model.Venue) error
	Delete(ctx context.Context, id uint64) error
	ListWithUpcoming(ctx context.Context, now time.Time) ([]schedule.EntitySummary, error)
	SearchByName(ctx context.Context, query string, now time.Time) ([]schedule.EntitySummary, error)
	Shows(ctx context.Context, venueID uint64) ([]schedule.ShowRow, error)
}

// ArtistStore is the persistence the directory needs for artists.
type ArtistStore interface {
	Create(ctx context.Context, a *model.Artist) error
	GetByID(ctx context.Context, id uint64) (*model.Artist, error)
	Update(ctx context.Context, a *model.Artist) error
	Delete(ctx context.Context, id uint64) error
	ListWithUpcoming(ctx context.Context, now time.Time) ([]schedule.EntitySummary, error)
	SearchByName(ctx context.Context, query string, now time.Time) ([]schedule.EntitySummary, error)
	Shows(ctx context.Context, artistID uint64) ([]schedule.ShowRow, error)
}

// ShowStore is the persistence the directory needs for shows.
type ShowStore interface {
	Create(ctx context.Context, s *model.Show) error
	ListAll(ctx context.Context) ([]model.ShowListing, error)
}

// Publisher delivers listing events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event queue.ListingEvent) error
}

// VenueDetail is a venue together with its shows split around now.
type VenueDetail struct {
	model.Venue
	schedule.Partition
}

// ArtistDetail is an artist together with its shows split around now.
type ArtistDetail struct {
	model.Artist
	schedule.Partition
}

// Directory implements the read and write use cases over the stores.
type Directory struct {
	Venues    VenueStore
	Artists   ArtistStore
	Shows     ShowStore
	Publisher Publisher // optional
	Logger    *log.Logger
	Now       func() time.Time
}

// NewDirectory wires a Directory. pub may be nil.
func NewDirectory(venues VenueStore, artists ArtistStore, shows ShowStore, pub Publisher, logger *log.Logger) *Directory {
	if logger == nil {
		logger = log.Default()
	}
	return &Directory{
		Venues:    venues,
		Artists:   artists,
		Shows:     shows,
		Publisher: pub,
		Logger:    logger.WithPrefix("directory"),
		Now:       time.Now,
	}
}

// Areas returns every venue grouped by city and state, each with its
// upcoming show count at now.
func (d *Directory) Areas(ctx context.Context, now time.Time) ([]schedule.Area, error) {
	venues, err := d.Venues.ListWithUpcoming(ctx, now)
	if err != nil {
		return nil, err
	}
	return schedule.GroupByArea(venues), nil
}

// SearchVenues returns the venues whose name contains query, ignoring case.
func (d *Directory) SearchVenues(ctx context.Context, query string, now time.Time) (schedule.SearchResult, error) {
	candidates, err := d.Venues.SearchByName(ctx, query, now)
	if err != nil {
		return schedule.SearchResult{}, err
	}
	return schedule.Filter(candidates, query), nil
}

// Venue returns the venue with its past and upcoming shows at now.
func (d *Directory) Venue(ctx context.Context, id uint64, now time.Time) (*VenueDetail, error) {
	v, err := d.Venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := d.Venues.Shows(ctx, id)
	if err != nil {
		return nil, err
	}
	return &VenueDetail{Venue: *v, Partition: schedule.Split(rows, now)}, nil
}

// GetVenue returns the stored venue without its shows.
func (d *Directory) GetVenue(ctx context.Context, id uint64) (*model.Venue, error) {
	return d.Venues.GetByID(ctx, id)
}

// CreateVenue stores v and announces it.
func (d *Directory) CreateVenue(ctx context.Context, v *model.Venue) error {
	if err := d.Venues.Create(ctx, v); err != nil {
		return err
	}
	d.publish(ctx, queue.ListingEvent{Kind: queue.KindVenue, ID: v.ID, Name: v.Name})
	return nil
}

// UpdateVenue overwrites the stored venue v.ID.
func (d *Directory) UpdateVenue(ctx context.Context, v *model.Venue) error {
	return d.Venues.Update(ctx, v)
}

// DeleteVenue removes a venue and its shows.
func (d *Directory) DeleteVenue(ctx context.Context, id uint64) error {
	return d.Venues.Delete(ctx, id)
}

// ListArtists returns every artist with its upcoming show count at now.
func (d *Directory) ListArtists(ctx context.Context, now time.Time) ([]schedule.EntitySummary, error) {
	return d.Artists.ListWithUpcoming(ctx, now)
}

// SearchArtists returns the artists whose name contains query, ignoring case.
func (d *Directory) SearchArtists(ctx context.Context, query string, now time.Time) (schedule.SearchResult, error) {
	candidates, err := d.Artists.SearchByName(ctx, query, now)
	if err != nil {
		return schedule.SearchResult{}, err
	}
	return schedule.Filter(candidates, query), nil
}

// Artist returns the artist with its past and upcoming shows at now.
func (d *Directory) Artist(ctx context.Context, id uint64, now time.Time) (*ArtistDetail, error) {
	a, err := d.Artists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := d.Artists.Shows(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ArtistDetail{Artist: *a, Partition: schedule.Split(rows, now)}, nil
}

// GetArtist returns the stored artist without its shows.
func (d *Directory) GetArtist(ctx context.Context, id uint64) (*model.Artist, error) {
	return d.Artists.GetByID(ctx, id)
}

// CreateArtist stores a and announces it.
func (d *Directory) CreateArtist(ctx context.Context, a *model.Artist) error {
	if err := d.Artists.Create(ctx, a); err != nil {
		return err
	}
	d.publish(ctx, queue.ListingEvent{Kind: queue.KindArtist, ID: a.ID, Name: a.Name})
	return nil
}

// UpdateArtist overwrites the stored artist a.ID.
func (d *Directory) UpdateArtist(ctx context.Context, a *model.Artist) error {
	return d.Artists.Update(ctx, a)
}

// DeleteArtist removes an artist and its shows.
func (d *Directory) DeleteArtist(ctx context.Context, id uint64) error {
	return d.Artists.Delete(ctx, id)
}

// ListShows returns every show with its venue and artist display fields.
func (d *Directory) ListShows(ctx context.Context) ([]model.ShowListing, error) {
	return d.Shows.ListAll(ctx)
}

// CreateShow stores s and announces it. A missing venue or artist surfaces
// as database.ErrForeignKey.
func (d *Directory) CreateShow(ctx context.Context, s *model.Show) error {
	if err := d.Shows.Create(ctx, s); err != nil {
		return err
	}
	d.publish(ctx, queue.ListingEvent{
		Kind:      queue.KindShow,
		ID:        s.ID,
		VenueID:   s.VenueID,
		ArtistID:  s.ArtistID,
		StartTime: s.StartTime.UTC().Format(schedule.StartTimeLayout),
	})
	return nil
}

// publish is best effort: the record is already committed.
func (d *Directory) publish(ctx context.Context, ev queue.ListingEvent) {
	if d.Publisher == nil {
		return
	}
	ev.ListedAt = d.Now().UTC().Format(time.RFC3339)
	if err := d.Publisher.Publish(ctx, ev); err != nil {
		d.Logger.Warn("listing event not published", "kind", ev.Kind, "id", ev.ID, "err", err)
	}
}
