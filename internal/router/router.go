// Package router defines how HTTP routes are registered for the directory.
package router

import (
	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/venue-booking/internal/config"
	"github.com/iliyamo/venue-booking/internal/handler"
	"github.com/iliyamo/venue-booking/internal/middleware"
)

// Options carries the optional infrastructure the routes are wrapped in.
// A nil Redis client disables the page cache and the rate limiter.
type Options struct {
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Redis     *redis.Client
	DB        handler.Pinger
	Logger    *log.Logger
}

// RegisterRoutes registers every page of the directory. Listing and detail
// pages go through the Redis page cache; form submissions and deletes are
// rate limited and purge the cache when they succeed.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, opts Options) {
	// Load balancers and monitoring probe /healthz.
	e.GET("/healthz", handler.Health(opts.DB))

	// Per-route middleware rather than groups: a group with middleware
	// catches unmatched paths too.
	cached := middleware.NewRedisCache(opts.Cache, opts.Redis)
	limited := []echo.MiddlewareFunc{
		middleware.NewTokenBucket(opts.RateLimit, opts.Redis),
		middleware.NewCachePurge(opts.Cache, opts.Redis, opts.Logger),
	}
	read := func(path string, fn echo.HandlerFunc) { e.GET(path, fn, cached) }
	post := func(path string, fn echo.HandlerFunc) { e.POST(path, fn, limited...) }
	del := func(path string, fn echo.HandlerFunc) { e.DELETE(path, fn, limited...) }

	read("/", h.Index)

	// Venues
	read("/venues", h.ListVenues)
	read("/venues/search", h.SearchVenues)
	e.POST("/venues/search", h.SearchVenues)
	e.GET("/venues/create", h.CreateVenueForm)
	post("/venues/create", h.CreateVenue)
	read("/venues/:id", h.ShowVenue)
	e.GET("/venues/:id/edit", h.EditVenueForm)
	post("/venues/:id/edit", h.EditVenue)
	del("/venues/:id", h.DeleteVenue)
	post("/venues/:id/delete", h.DeleteVenue)

	// Artists
	read("/artists", h.ListArtists)
	read("/artists/search", h.SearchArtists)
	e.POST("/artists/search", h.SearchArtists)
	e.GET("/artists/create", h.CreateArtistForm)
	post("/artists/create", h.CreateArtist)
	read("/artists/:id", h.ShowArtist)
	e.GET("/artists/:id/edit", h.EditArtistForm)
	post("/artists/:id/edit", h.EditArtist)
	del("/artists/:id", h.DeleteArtist)
	post("/artists/:id/delete", h.DeleteArtist)

	// Shows
	read("/shows", h.ListShows)
	e.GET("/shows/create", h.CreateShowForm)
	post("/shows/create", h.CreateShow)
}
