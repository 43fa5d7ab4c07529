// Package repository contains data access logic separated from HTTP handlers.
// This file defines the venue repository: CRUD, the per-area listing, name
// search and the joined show rows used by the venue page.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides sentinel errors such as sql.ErrNoRows
	"errors"       // errors is used to compare sentinel values
	"time"

	"github.com/iliyamo/venue-booking/internal/database"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/schedule"
)

const venueColumns = `id, name, city, state, address, phone, image_link, facebook_link, website,
	genres, seeking_talent, seeking_description, created_at, updated_at`

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db *database.DB // db is the underlying database connection pool
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *database.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// Create inserts a new venue inside a transaction. On success the venue's
// ID and timestamp fields are populated from the stored row; on failure
// nothing is written.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const qInsert = `INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link,
		website, genres, seeking_talent, seeking_description) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return r.db.TransactionContext(ctx, func(tx *database.Tx) error {
		res, err := tx.ExecContext(ctx, qInsert,
			v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink, v.FacebookLink,
			v.Website, v.Genres, v.SeekingTalent, v.SeekingDescription)
		if err != nil {
			return database.WrapError(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		return tx.GetContext(ctx, v, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id)
	})
}

// GetByID fetches a venue by its ID. It returns ErrVenueNotFound if no
// row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	var v model.Venue
	if err := r.db.GetContext(ctx, &v, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Update overwrites every editable field of the venue identified by v.ID.
// The row is locked first so a missing venue is told apart from an update
// that changes nothing.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const qUpdate = `UPDATE venues
		SET name = ?, city = ?, state = ?, address = ?, phone = ?, image_link = ?, facebook_link = ?,
		    website = ?, genres = ?, seeking_talent = ?, seeking_description = ?
		WHERE id = ?`
	return r.db.TransactionContext(ctx, func(tx *database.Tx) error {
		var id uint64
		if err := tx.GetContext(ctx, &id, `SELECT id FROM venues WHERE id = ? FOR UPDATE`, v.ID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrVenueNotFound
			}
			return err
		}
		if _, err := tx.ExecContext(ctx, qUpdate,
			v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink, v.FacebookLink,
			v.Website, v.Genres, v.SeekingTalent, v.SeekingDescription, v.ID); err != nil {
			return database.WrapError(err)
		}
		return tx.GetContext(ctx, v, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, v.ID)
	})
}

// Delete removes a venue and its shows in one transaction. If the venue
// does not exist, ErrVenueNotFound is returned and nothing changes.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.TransactionContext(ctx, func(tx *database.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
		if err != nil {
			return database.WrapError(err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrVenueNotFound
		}
		return nil
	})
}

// ListWithUpcoming returns every venue ordered by area and then id, each
// annotated with the number of shows upcoming at now.
func (r *VenueRepo) ListWithUpcoming(ctx context.Context, now time.Time) ([]schedule.EntitySummary, error) {
	const q = `SELECT v.id, v.name, v.city, v.state,
		(SELECT COUNT(*) FROM shows s WHERE s.venue_id = v.id AND s.start_time >= ?) AS num_upcoming_shows
		FROM venues v
		ORDER BY v.state, v.city, v.id`
	out := []schedule.EntitySummary{}
	if err := r.db.SelectContext(ctx, &out, q, now); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchByName returns the venues whose name contains query, ignoring case,
// in id order and annotated with their upcoming show count at now.
func (r *VenueRepo) SearchByName(ctx context.Context, query string, now time.Time) ([]schedule.EntitySummary, error) {
	const q = `SELECT v.id, v.name, v.city, v.state,
		(SELECT COUNT(*) FROM shows s WHERE s.venue_id = v.id AND s.start_time >= ?) AS num_upcoming_shows
		FROM venues v
		WHERE LOWER(v.name) LIKE ? ESCAPE '!'
		ORDER BY v.id`
	out := []schedule.EntitySummary{}
	if err := r.db.SelectContext(ctx, &out, q, now, schedule.LikePattern(query)); err != nil {
		return nil, err
	}
	return out, nil
}

// Shows returns every show held at the venue joined with its artist, ordered
// by start time.
func (r *VenueRepo) Shows(ctx context.Context, venueID uint64) ([]schedule.ShowRow, error) {
	const q = `SELECT s.id AS show_id, a.id AS counterpart_id, a.name AS counterpart_name,
		a.image_link AS counterpart_image_link, s.start_time
		FROM shows s
		JOIN artists a ON a.id = s.artist_id
		WHERE s.venue_id = ?
		ORDER BY s.start_time, s.id`
	out := []schedule.ShowRow{}
	if err := r.db.SelectContext(ctx, &out, q, venueID); err != nil {
		return nil, err
	}
	return out, nil
}
