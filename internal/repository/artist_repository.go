package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/venue-booking/internal/database"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/schedule"
)

const artistColumns = `id, name, city, state, phone, genres, image_link, facebook_link, website,
	seeking_venue, seeking_description, created_at, updated_at`

// ArtistRepo manages persistence for artists.
type ArtistRepo struct {
	db *database.DB
}

// NewArtistRepo constructs an ArtistRepo with the given DB handle.
func NewArtistRepo(db *database.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// Create inserts a new artist inside a transaction and populates the
// generated ID and timestamps.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	const qInsert = `INSERT INTO artists (name, city, state, phone, genres, image_link, facebook_link,
		website, seeking_venue, seeking_description) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return r.db.TransactionContext(ctx, func(tx *database.Tx) error {
		res, err := tx.ExecContext(ctx, qInsert,
			a.Name, a.City, a.State, a.Phone, a.Genres, a.ImageLink, a.FacebookLink,
			a.Website, a.SeekingVenue, a.SeekingDescription)
		if err != nil {
			return database.WrapError(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		return tx.GetContext(ctx, a, `SELECT `+artistColumns+` FROM artists WHERE id = ?`, id)
	})
}

// GetByID retrieves an artist by its ID. It returns ErrArtistNotFound if
// there is no matching row.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	var a model.Artist
	if err := r.db.GetContext(ctx, &a, `SELECT `+artistColumns+` FROM artists WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Update overwrites every editable field of the artist identified by a.ID.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	const qUpdate = `UPDATE artists
		SET name = ?, city = ?, state = ?, phone = ?, genres = ?, image_link = ?, facebook_link = ?,
		    website = ?, seeking_venue = ?, seeking_description = ?
		WHERE id = ?`
	return r.db.TransactionContext(ctx, func(tx *database.Tx) error {
		var id uint64
		if err := tx.GetContext(ctx, &id, `SELECT id FROM artists WHERE id = ? FOR UPDATE`, a.ID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrArtistNotFound
			}
			return err
		}
		if _, err := tx.ExecContext(ctx, qUpdate,
			a.Name, a.City, a.State, a.Phone, a.Genres, a.ImageLink, a.FacebookLink,
			a.Website, a.SeekingVenue, a.SeekingDescription, a.ID); err != nil {
			return database.WrapError(err)
		}
		return tx.GetContext(ctx, a, `SELECT `+artistColumns+` FROM artists WHERE id = ?`, a.ID)
	})
}

// Delete removes an artist and its shows in one transaction.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.TransactionContext(ctx, func(tx *database.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE artist_id = ?`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
		if err != nil {
			return database.WrapError(err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrArtistNotFound
		}
		return nil
	})
}

// ListWithUpcoming returns every artist in id order with its upcoming show
// count at now.
func (r *ArtistRepo) ListWithUpcoming(ctx context.Context, now time.Time) ([]schedule.EntitySummary, error) {
	const q = `SELECT a.id, a.name, a.city, a.state,
		(SELECT COUNT(*) FROM shows s WHERE s.artist_id = a.id AND s.start_time >= ?) AS num_upcoming_shows
		FROM artists a
		ORDER BY a.id`
	out := []schedule.EntitySummary{}
	if err := r.db.SelectContext(ctx, &out, q, now); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchByName returns the artists whose name contains query, ignoring case.
func (r *ArtistRepo) SearchByName(ctx context.Context, query string, now time.Time) ([]schedule.EntitySummary, error) {
	const q = `SELECT a.id, a.name, a.city, a.state,
		(SELECT COUNT(*) FROM shows s WHERE s.artist_id = a.id AND s.start_time >= ?) AS num_upcoming_shows
		FROM artists a
		WHERE LOWER(a.name) LIKE ? ESCAPE '!'
		ORDER BY a.id`
	out := []schedule.EntitySummary{}
	if err := r.db.SelectContext(ctx, &out, q, now, schedule.LikePattern(query)); err != nil {
		return nil, err
	}
	return out, nil
}

// Shows returns every show of the artist joined with its venue.
func (r *ArtistRepo) Shows(ctx context.Context, artistID uint64) ([]schedule.ShowRow, error) {
	const q = `SELECT s.id AS show_id, v.id AS counterpart_id, v.name AS counterpart_name,
		v.image_link AS counterpart_image_link, s.start_time
		FROM shows s
		JOIN venues v ON v.id = s.venue_id
		WHERE s.artist_id = ?
		ORDER BY s.start_time, s.id`
	out := []schedule.ShowRow{}
	if err := r.db.SelectContext(ctx, &out, q, artistID); err != nil {
		return nil, err
	}
	return out, nil
}
