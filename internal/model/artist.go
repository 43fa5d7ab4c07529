package model

import "time"

// Artist represents a performer.  This struct corresponds to a row in the
// `artists` table.  Deleting an artist removes its shows.
type Artist struct {
	ID                 uint64    `db:"id"`
	Name               string    `db:"name"`
	City               string    `db:"city"`
	State              string    `db:"state"`
	Phone              string    `db:"phone"`
	Genres             Genres    `db:"genres"`
	ImageLink          string    `db:"image_link"`
	FacebookLink       string    `db:"facebook_link"`
	Website            string    `db:"website"`
	SeekingVenue       bool      `db:"seeking_venue"`
	SeekingDescription string    `db:"seeking_description"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}
