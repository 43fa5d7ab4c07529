package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/database"
	"github.com/iliyamo/venue-booking/internal/form"
	"github.com/iliyamo/venue-booking/internal/view"
)

// ListShows renders every show with its venue and artist.
func (h *Handler) ListShows(c echo.Context) error {
	shows, err := h.Dir.ListShows(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/shows", "Shows", shows, nil)
}

// CreateShowForm renders the empty show form.
func (h *Handler) CreateShowForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "pages/show_form", "New show",
		view.FormPage{Action: "/shows/create", Form: form.ShowForm{}}, nil)
}

// CreateShow stores a submitted show. A show for a missing artist or venue
// is rejected by the store and reported by flash.
func (h *Handler) CreateShow(c echo.Context) error {
	var f form.ShowForm
	if errs := h.bindForm(c, &f); errs != nil {
		return h.render(c, http.StatusBadRequest, "pages/show_form", "New show",
			view.FormPage{Action: "/shows/create", Form: f}, errs)
	}

	s, err := f.ToModel()
	if err != nil {
		return h.render(c, http.StatusBadRequest, "pages/show_form", "New show",
			view.FormPage{Action: "/shows/create", Form: f}, []string{err.Error()})
	}
	if err := h.Dir.CreateShow(c.Request().Context(), &s); err != nil {
		if errors.Is(err, database.ErrForeignKey) {
			h.flash(c, "An error occurred. Show could not be listed: unknown artist or venue.")
		} else {
			h.Logger.Error("create show", "artist_id", s.ArtistID, "venue_id", s.VenueID, "err", err)
			h.flash(c, "An error occurred. Show could not be listed.")
		}
		return c.Redirect(http.StatusSeeOther, "/")
	}
	h.flash(c, "Show was successfully listed!")
	return c.Redirect(http.StatusSeeOther, "/")
}
