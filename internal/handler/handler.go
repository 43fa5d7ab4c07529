// Package handler exposes the HTTP handlers of the directory. Pages are
// server rendered; writes follow Post/Redirect/Get and report their outcome
// through flash messages.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/middleware"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/schedule"
	"github.com/iliyamo/venue-booking/internal/service"
	"github.com/iliyamo/venue-booking/internal/view"
)

// Directory is the set of use cases the handlers call.
type Directory interface {
	Areas(ctx context.Context, now time.Time) ([]schedule.Area, error)
	SearchVenues(ctx context.Context, query string, now time.Time) (schedule.SearchResult, error)
	Venue(ctx context.Context, id uint64, now time.Time) (*service.VenueDetail, error)
	GetVenue(ctx context.Context, id uint64) (*model.Venue, error)
	CreateVenue(ctx context.Context, v *model.Venue) error
	UpdateVenue(ctx context.Context, v *model.Venue) error
	DeleteVenue(ctx context.Context, id uint64) error

	ListArtists(ctx context.Context, now time.Time) ([]schedule.EntitySummary, error)
	SearchArtists(ctx context.Context, query string, now time.Time) (schedule.SearchResult, error)
	Artist(ctx context.Context, id uint64, now time.Time) (*service.ArtistDetail, error)
	GetArtist(ctx context.Context, id uint64) (*model.Artist, error)
	CreateArtist(ctx context.Context, a *model.Artist) error
	UpdateArtist(ctx context.Context, a *model.Artist) error
	DeleteArtist(ctx context.Context, id uint64) error

	ListShows(ctx context.Context) ([]model.ShowListing, error)
	CreateShow(ctx context.Context, s *model.Show) error
}

// Handler bundles the dependencies of every page handler.
type Handler struct {
	Dir    Directory
	Clock  func() time.Time
	Logger *log.Logger
}

// New returns a Handler reading the wall clock.
func New(dir Directory, logger *log.Logger) *Handler {
	if dir == nil {
		panic("nil directory passed to handler.New")
	}
	return &Handler{Dir: dir, Clock: time.Now, Logger: logger.WithPrefix("http")}
}

func (h *Handler) now() time.Time { return h.Clock().UTC() }

// render wraps content in the page envelope, consuming pending flashes.
func (h *Handler) render(c echo.Context, status int, name, title string, content any, errs []string) error {
	return c.Render(status, name, view.Page{
		Title:   title,
		Flashes: middleware.Flashes(c),
		Errors:  errs,
		Content: content,
	})
}

// flash queues msg, logging instead of failing the request when the
// session cannot be written.
func (h *Handler) flash(c echo.Context, msg string) {
	if err := middleware.AddFlash(c, msg); err != nil {
		h.Logger.Warn("flash not stored", "err", err)
	}
}

// pathID parses the :id parameter. Anything but a positive integer is a
// missing page.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.ErrNotFound
	}
	return id, nil
}

// isNotFound reports whether err means the requested record does not exist.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrVenueNotFound) || errors.Is(err, repository.ErrArtistNotFound)
}

// lookupErr maps a read error to the HTTP error the client sees.
func lookupErr(err error) error {
	if isNotFound(err) {
		return echo.ErrNotFound
	}
	return err
}

// Index renders the landing page.
func (h *Handler) Index(c echo.Context) error {
	return h.render(c, http.StatusOK, "pages/home", "", nil, nil)
}
