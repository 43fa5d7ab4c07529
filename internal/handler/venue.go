package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/form"
	"github.com/iliyamo/venue-booking/internal/view"
)

// ListVenues renders every venue grouped by city.
func (h *Handler) ListVenues(c echo.Context) error {
	areas, err := h.Dir.Areas(c.Request().Context(), h.now())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/venues", "Venues", areas, nil)
}

// SearchVenues renders the venues whose name contains search_term.
func (h *Handler) SearchVenues(c echo.Context) error {
	term := c.FormValue("search_term")
	res, err := h.Dir.SearchVenues(c.Request().Context(), term, h.now())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/search", "Venue search",
		view.SearchPage{Term: term, Base: "/venues", Result: res}, nil)
}

// ShowVenue renders one venue with its past and upcoming shows.
func (h *Handler) ShowVenue(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	v, err := h.Dir.Venue(c.Request().Context(), id, h.now())
	if err != nil {
		return lookupErr(err)
	}
	return h.render(c, http.StatusOK, "pages/venue", v.Name, v, nil)
}

// CreateVenueForm renders the empty venue form.
func (h *Handler) CreateVenueForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "pages/venue_form", "New venue",
		view.FormPage{Action: "/venues/create", Form: form.VenueForm{}}, nil)
}

// CreateVenue stores a submitted venue. Invalid input re-renders the form;
// a store failure is reported by flash and nothing is written.
func (h *Handler) CreateVenue(c echo.Context) error {
	var f form.VenueForm
	if errs := h.bindForm(c, &f); errs != nil {
		return h.render(c, http.StatusBadRequest, "pages/venue_form", "New venue",
			view.FormPage{Action: "/venues/create", Form: f}, errs)
	}

	v := f.ToModel()
	if err := h.Dir.CreateVenue(c.Request().Context(), &v); err != nil {
		h.Logger.Error("create venue", "name", v.Name, "err", err)
		h.flash(c, fmt.Sprintf("An error occurred. Venue %s could not be listed.", v.Name))
		return c.Redirect(http.StatusSeeOther, "/")
	}
	h.flash(c, fmt.Sprintf("Venue %s was successfully listed!", v.Name))
	return c.Redirect(http.StatusSeeOther, "/")
}

// EditVenueForm renders the venue form pre-filled from the store.
func (h *Handler) EditVenueForm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	v, err := h.Dir.GetVenue(c.Request().Context(), id)
	if err != nil {
		return lookupErr(err)
	}
	return h.render(c, http.StatusOK, "pages/venue_form", "Edit venue",
		view.FormPage{ID: id, Action: fmt.Sprintf("/venues/%d/edit", id), Form: form.VenueFormFrom(*v)}, nil)
}

// EditVenue overwrites a venue with the submitted form.
func (h *Handler) EditVenue(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var f form.VenueForm
	if errs := h.bindForm(c, &f); errs != nil {
		return h.render(c, http.StatusBadRequest, "pages/venue_form", "Edit venue",
			view.FormPage{ID: id, Action: fmt.Sprintf("/venues/%d/edit", id), Form: f}, errs)
	}

	v := f.ToModel()
	v.ID = id
	if err := h.Dir.UpdateVenue(c.Request().Context(), &v); err != nil {
		if isNotFound(err) {
			return echo.ErrNotFound
		}
		h.Logger.Error("update venue", "id", id, "err", err)
		h.flash(c, fmt.Sprintf("An error occurred. Venue %s could not be updated.", v.Name))
	} else {
		h.flash(c, fmt.Sprintf("Venue %s was successfully updated!", v.Name))
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/venues/%d", id))
}

// DeleteVenue removes a venue and its shows. DELETE answers 204; the form
// button (POST) is redirected home.
func (h *Handler) DeleteVenue(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Dir.DeleteVenue(c.Request().Context(), id); err != nil {
		if isNotFound(err) {
			return echo.ErrNotFound
		}
		h.Logger.Error("delete venue", "id", id, "err", err)
		if c.Request().Method == http.MethodDelete {
			return err
		}
		h.flash(c, "An error occurred. Venue could not be deleted.")
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/venues/%d", id))
	}
	if c.Request().Method == http.MethodDelete {
		return c.NoContent(http.StatusNoContent)
	}
	h.flash(c, "Venue was successfully deleted.")
	return c.Redirect(http.StatusSeeOther, "/")
}
