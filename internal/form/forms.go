package form

import (
	"strings"

	"github.com/iliyamo/venue-booking/internal/model"
)

// checked reports whether a checkbox value means "on". Browsers send the
// field only when it is ticked, with any value.
func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "false", "n", "no", "off", "0":
		return false
	}
	return true
}

func onOff(b bool) string {
	if b {
		return "y"
	}
	return ""
}

// VenueForm is the venue create/edit input.
type VenueForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,state"`
	Address            string   `form:"address" validate:"required,max=120"`
	Phone              string   `form:"phone" validate:"omitempty,max=120"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	Website            string   `form:"website_link" validate:"omitempty,url,max=120"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre"`
	SeekingTalent      string   `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

// ToModel returns the venue described by the form.
func (f VenueForm) ToModel() model.Venue {
	return model.Venue{
		Name:               strings.TrimSpace(f.Name),
		City:               strings.TrimSpace(f.City),
		State:              f.State,
		Address:            strings.TrimSpace(f.Address),
		Phone:              strings.TrimSpace(f.Phone),
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		Genres:             model.Genres(append([]string{}, f.Genres...)),
		SeekingTalent:      checked(f.SeekingTalent),
		SeekingDescription: f.SeekingDescription,
	}
}

// VenueFormFrom pre-fills the edit form from a stored venue.
func VenueFormFrom(v model.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		Website:            v.Website,
		Genres:             append([]string{}, v.Genres...),
		SeekingTalent:      onOff(v.SeekingTalent),
		SeekingDescription: v.SeekingDescription,
	}
}

// ArtistForm is the artist create/edit input.
type ArtistForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,state"`
	Phone              string   `form:"phone" validate:"omitempty,max=120"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	Website            string   `form:"website_link" validate:"omitempty,url,max=120"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre"`
	SeekingVenue       string   `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

// ToModel returns the artist described by the form.
func (f ArtistForm) ToModel() model.Artist {
	return model.Artist{
		Name:               strings.TrimSpace(f.Name),
		City:               strings.TrimSpace(f.City),
		State:              f.State,
		Phone:              strings.TrimSpace(f.Phone),
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		Genres:             model.Genres(append([]string{}, f.Genres...)),
		SeekingVenue:       checked(f.SeekingVenue),
		SeekingDescription: f.SeekingDescription,
	}
}

// ArtistFormFrom pre-fills the edit form from a stored artist.
func ArtistFormFrom(a model.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		Website:            a.Website,
		Genres:             append([]string{}, a.Genres...),
		SeekingVenue:       onOff(a.SeekingVenue),
		SeekingDescription: a.SeekingDescription,
	}
}

// ShowForm is the show create input.
type ShowForm struct {
	ArtistID  uint64 `form:"artist_id" validate:"required"`
	VenueID   uint64 `form:"venue_id" validate:"required"`
	StartTime string `form:"start_time" validate:"required,starttime"`
}

// ToModel returns the show described by a validated form.
func (f ShowForm) ToModel() (model.Show, error) {
	start, err := ParseStartTime(f.StartTime)
	if err != nil {
		return model.Show{}, err
	}
	return model.Show{ArtistID: f.ArtistID, VenueID: f.VenueID, StartTime: start}, nil
}
