package repository

import (
	"context"

	"github.com/iliyamo/venue-booking/internal/database"
	"github.com/iliyamo/venue-booking/internal/model"
)

// ShowRepo manages persistence for shows. Both parent references are
// foreign keys, so inserting a show for a missing venue or artist fails
// with database.ErrForeignKey.
type ShowRepo struct {
	db *database.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *database.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a new show and assigns the generated ID back to it.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`
	return r.db.TransactionContext(ctx, func(tx *database.Tx) error {
		res, err := tx.ExecContext(ctx, q, s.ArtistID, s.VenueID, s.StartTime.UTC())
		if err != nil {
			return database.WrapError(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		s.ID = uint64(id)
		return nil
	})
}

// ListAll returns every show joined with its venue and artist, ordered by
// start time ascending.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.ShowListing, error) {
	const q = `SELECT s.id, s.venue_id, v.name AS venue_name, s.artist_id, a.name AS artist_name,
		a.image_link AS artist_image_link, s.start_time
		FROM shows s
		JOIN venues v  ON v.id = s.venue_id
		JOIN artists a ON a.id = s.artist_id
		ORDER BY s.start_time, s.id`
	out := []model.ShowListing{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}
