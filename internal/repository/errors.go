// Package repository defines the sentinel errors shared by the venue,
// artist and show repositories. Handlers translate ErrVenueNotFound and
// ErrArtistNotFound into a 404 page; every other error is a write or
// server failure.
package repository

import "errors"

// ErrVenueNotFound is returned when no venue has the requested id.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when no artist has the requested id.
var ErrArtistNotFound = errors.New("artist not found")
