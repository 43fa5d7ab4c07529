package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/form"
	"github.com/iliyamo/venue-booking/internal/view"
)

// ListArtists renders every artist.
func (h *Handler) ListArtists(c echo.Context) error {
	artists, err := h.Dir.ListArtists(c.Request().Context(), h.now())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/artists", "Artists", artists, nil)
}

// SearchArtists renders the artists whose name contains search_term.
func (h *Handler) SearchArtists(c echo.Context) error {
	term := c.FormValue("search_term")
	res, err := h.Dir.SearchArtists(c.Request().Context(), term, h.now())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/search", "Artist search",
		view.SearchPage{Term: term, Base: "/artists", Result: res}, nil)
}

// ShowArtist renders one artist with its past and upcoming shows.
func (h *Handler) ShowArtist(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	a, err := h.Dir.Artist(c.Request().Context(), id, h.now())
	if err != nil {
		return lookupErr(err)
	}
	return h.render(c, http.StatusOK, "pages/artist", a.Name, a, nil)
}

// CreateArtistForm renders the empty artist form.
func (h *Handler) CreateArtistForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "pages/artist_form", "New artist",
		view.FormPage{Action: "/artists/create", Form: form.ArtistForm{}}, nil)
}

// CreateArtist stores a submitted artist.
func (h *Handler) CreateArtist(c echo.Context) error {
	var f form.ArtistForm
	if errs := h.bindForm(c, &f); errs != nil {
		return h.render(c, http.StatusBadRequest, "pages/artist_form", "New artist",
			view.FormPage{Action: "/artists/create", Form: f}, errs)
	}

	a := f.ToModel()
	if err := h.Dir.CreateArtist(c.Request().Context(), &a); err != nil {
		h.Logger.Error("create artist", "name", a.Name, "err", err)
		h.flash(c, fmt.Sprintf("An error occurred. Artist %s could not be listed.", a.Name))
		return c.Redirect(http.StatusSeeOther, "/")
	}
	h.flash(c, fmt.Sprintf("Artist %s was successfully listed!", a.Name))
	return c.Redirect(http.StatusSeeOther, "/")
}

// EditArtistForm renders the artist form pre-filled from the store.
func (h *Handler) EditArtistForm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	a, err := h.Dir.GetArtist(c.Request().Context(), id)
	if err != nil {
		return lookupErr(err)
	}
	return h.render(c, http.StatusOK, "pages/artist_form", "Edit artist",
		view.FormPage{ID: id, Action: fmt.Sprintf("/artists/%d/edit", id), Form: form.ArtistFormFrom(*a)}, nil)
}

// EditArtist overwrites an artist with the submitted form.
func (h *Handler) EditArtist(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var f form.ArtistForm
	if errs := h.bindForm(c, &f); errs != nil {
		return h.render(c, http.StatusBadRequest, "pages/artist_form", "Edit artist",
			view.FormPage{ID: id, Action: fmt.Sprintf("/artists/%d/edit", id), Form: f}, errs)
	}

	a := f.ToModel()
	a.ID = id
	if err := h.Dir.UpdateArtist(c.Request().Context(), &a); err != nil {
		if isNotFound(err) {
			return echo.ErrNotFound
		}
		h.Logger.Error("update artist", "id", id, "err", err)
		h.flash(c, fmt.Sprintf("An error occurred. Artist %s could not be updated.", a.Name))
	} else {
		h.flash(c, fmt.Sprintf("Artist %s was successfully updated!", a.Name))
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/artists/%d", id))
}

// DeleteArtist removes an artist and its shows.
func (h *Handler) DeleteArtist(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Dir.DeleteArtist(c.Request().Context(), id); err != nil {
		if isNotFound(err) {
			return echo.ErrNotFound
		}
		h.Logger.Error("delete artist", "id", id, "err", err)
		if c.Request().Method == http.MethodDelete {
			return err
		}
		h.flash(c, "An error occurred. Artist could not be deleted.")
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/artists/%d", id))
	}
	if c.Request().Method == http.MethodDelete {
		return c.NoContent(http.StatusNoContent)
	}
	h.flash(c, "Artist was successfully deleted.")
	return c.Redirect(http.StatusSeeOther, "/")
}
