package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking/internal/config"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

var pageCache = config.CacheConfig{
	Enabled:      true,
	Methods:      []string{"GET"},
	TTL:          time.Minute,
	KeyStrategy:  "route_query",
	Prefix:       "cache",
	MaxBodyBytes: 1 << 20,
}

// cachedServer mounts a venue listing behind the session and page cache
// and a create route that flashes and purges. calls counts listing renders.
func cachedServer(rdb *redis.Client, calls *int) *echo.Echo {
	e := echo.New()
	e.Use(Session(testSecret, false))
	e.GET("/venues", func(c echo.Context) error {
		*calls++
		return c.HTML(http.StatusOK, "<h1>Venues</h1>"+strings.Join(Flashes(c), ""))
	}, NewRedisCache(pageCache, rdb))
	e.POST("/venues/create", func(c echo.Context) error {
		if err := AddFlash(c, "Venue The Musical Hop was successfully listed!"); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/venues")
	}, NewCachePurge(pageCache, rdb, log.New(io.Discard)))
	return e
}

func request(e *echo.Echo, method, target string, ck *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if ck != nil {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRedisCacheMissThenHit(t *testing.T) {
	_, rdb := newRedis(t)
	calls := 0
	e := cachedServer(rdb, &calls)

	first := request(e, http.MethodGet, "/venues", nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := request(e, http.MethodGet, "/venues", nil)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, "<h1>Venues</h1>", second.Body.String())
	assert.Contains(t, second.Header().Get(echo.HeaderContentType), "text/html")
	assert.Equal(t, 1, calls)
}

func TestRedisCacheNeverReplaysSessionCookie(t *testing.T) {
	_, rdb := newRedis(t)
	calls := 0
	e := cachedServer(rdb, &calls)

	first := request(e, http.MethodGet, "/venues", nil)
	second := request(e, http.MethodGet, "/venues", nil)
	require.Equal(t, "HIT", second.Header().Get("X-Cache"))

	// Each visitor gets exactly the cookie of its own fresh session.
	assert.Len(t, second.Header().Values(echo.HeaderSetCookie), 1)
	a, ok := parseSession(sessionCookie(t, first).Value, []byte(testSecret))
	require.True(t, ok)
	b, ok := parseSession(sessionCookie(t, second).Value, []byte(testSecret))
	require.True(t, ok)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRedisCacheBypassedWithPendingFlash(t *testing.T) {
	_, rdb := newRedis(t)
	calls := 0
	e := cachedServer(rdb, &calls)

	created := request(e, http.MethodPost, "/venues/create", nil)
	require.Equal(t, http.StatusSeeOther, created.Code)
	flashed := sessionCookie(t, created)

	require.Equal(t, "MISS", request(e, http.MethodGet, "/venues", nil).Header().Get("X-Cache"))
	require.Equal(t, "HIT", request(e, http.MethodGet, "/venues", nil).Header().Get("X-Cache"))

	rec := request(e, http.MethodGet, "/venues", flashed)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Contains(t, rec.Body.String(), "The Musical Hop was successfully listed!")
	assert.Equal(t, 2, calls)

	// Once shown, the flash is gone and the visitor shares the cached page.
	again := request(e, http.MethodGet, "/venues", sessionCookie(t, rec))
	assert.Equal(t, "HIT", again.Header().Get("X-Cache"))
	assert.NotContains(t, again.Body.String(), "successfully listed")
	assert.Equal(t, 2, calls)
}

func TestCachePurgedAfterWrite(t *testing.T) {
	mr, rdb := newRedis(t)
	calls := 0
	e := cachedServer(rdb, &calls)

	request(e, http.MethodGet, "/venues", nil)
	request(e, http.MethodGet, "/venues?page=2", nil)
	require.Len(t, cacheKeys(mr), 2)
	require.NoError(t, mr.Set("other", "kept"))

	rec := request(e, http.MethodPost, "/venues/create", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, cacheKeys(mr))
	assert.True(t, mr.Exists("other"))

	assert.Equal(t, "MISS", request(e, http.MethodGet, "/venues", nil).Header().Get("X-Cache"))
	assert.Equal(t, 3, calls)
}

func TestCacheNotPurgedAfterFailedWrite(t *testing.T) {
	mr, rdb := newRedis(t)
	e := echo.New()
	e.GET("/venues", func(c echo.Context) error { return c.String(http.StatusOK, "list") }, NewRedisCache(pageCache, rdb))
	e.POST("/venues/create", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest)
	}, NewCachePurge(pageCache, rdb, log.New(io.Discard)))

	request(e, http.MethodGet, "/venues", nil)
	request(e, http.MethodPost, "/venues/create", nil)
	assert.Len(t, cacheKeys(mr), 1)
}

func cacheKeys(mr *miniredis.Miniredis) []string {
	var out []string
	for _, k := range mr.Keys() {
		if strings.HasPrefix(k, pageCache.Prefix+":") {
			out = append(out, k)
		}
	}
	return out
}

func TestTokenBucketRejectsAtCapacity(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       1,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		KeyStrategy:    "ip",
		Prefix:         "rl",
	}
	e := echo.New()
	e.POST("/venues/create", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, NewTokenBucket(cfg, rdb))

	first := request(e, http.MethodPost, "/venues/create", nil)
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := request(e, http.MethodPost, "/venues/create", nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
}

func TestTokenBucketKeysPerClient(t *testing.T) {
	mr, rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       1,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		KeyStrategy:    "ip",
		Prefix:         "rl",
	}
	e := echo.New()
	e.POST("/shows/create", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, NewTokenBucket(cfg, rdb))

	post := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/shows/create", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusNoContent, post("10.0.0.1:1000"))
	assert.Equal(t, http.StatusNoContent, post("10.0.0.2:1000"))
	assert.Equal(t, http.StatusTooManyRequests, post("10.0.0.1:1001"))

	assert.True(t, mr.Exists("rl:ip:10.0.0.1"))
	assert.Equal(t, 10*time.Minute, mr.TTL("rl:ip:10.0.0.1"))
}
