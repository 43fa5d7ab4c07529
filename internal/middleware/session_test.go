package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	var found *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookie {
			found = ck
		}
	}
	require.NotNil(t, found, "session cookie not set")
	return found
}

func serve(e *echo.Echo, ck *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if ck != nil {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSessionIssuesAndKeepsID(t *testing.T) {
	e := echo.New()
	e.Use(Session(testSecret, false))
	var seen []string
	e.GET("/", func(c echo.Context) error {
		seen = append(seen, SessionID(c))
		return c.NoContent(http.StatusOK)
	})

	rec := serve(e, nil)
	ck := sessionCookie(t, rec)
	assert.True(t, ck.HttpOnly)

	serve(e, ck)
	require.Len(t, seen, 2)
	assert.NotEqual(t, "anon", seen[0])
	assert.Equal(t, seen[0], seen[1])
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	e := echo.New()
	e.Use(Session(testSecret, false))
	var seen string
	e.GET("/", func(c echo.Context) error {
		seen = SessionID(c)
		return c.NoContent(http.StatusOK)
	})

	ck := sessionCookie(t, serve(e, nil))
	serve(e, ck)
	first := seen

	ck.Value += "x"
	serve(e, ck)
	assert.NotEqual(t, first, seen)
}

func TestFlashesSurviveRedirect(t *testing.T) {
	e := echo.New()
	e.Use(Session(testSecret, false))
	var got []string
	e.POST("/venues/create", func(c echo.Context) error {
		if err := AddFlash(c, "Venue The Musical Hop was successfully listed!"); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/")
	})
	e.GET("/", func(c echo.Context) error {
		got = Flashes(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/venues/create", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	ck := sessionCookie(t, rec)

	rec = serve(e, ck)
	assert.Equal(t, []string{"Venue The Musical Hop was successfully listed!"}, got)

	// Flashes are shown once.
	serve(e, sessionCookie(t, rec))
	assert.Empty(t, got)
}

func TestSessionHelpersWithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Equal(t, "anon", SessionID(c))
	assert.NoError(t, AddFlash(c, "x"))
	assert.False(t, HasFlashes(c))
	assert.Nil(t, Flashes(c))
}
