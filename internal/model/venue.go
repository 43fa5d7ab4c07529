package model

import "time"

// Venue represents a place that hosts shows.  This struct corresponds to a
// row in the `venues` table.  Deleting a venue removes its shows.
type Venue struct {
	ID                 uint64    `db:"id"`
	Name               string    `db:"name"`
	City               string    `db:"city"`
	State              string    `db:"state"`
	Address            string    `db:"address"`
	Phone              string    `db:"phone"`
	ImageLink          string    `db:"image_link"`
	FacebookLink       string    `db:"facebook_link"`
	Website            string    `db:"website"`
	Genres             Genres    `db:"genres"`
	SeekingTalent      bool      `db:"seeking_talent"`
	SeekingDescription string    `db:"seeking_description"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}
