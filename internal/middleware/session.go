package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SessionCookie is the name of the signed session cookie.
const SessionCookie = "fyyur_session"

const (
	sessionKey = "session"
	sessionTTL = 30 * 24 * time.Hour
)

// sessionClaims is the payload of the session cookie. The JWT ID carries
// the session id; Flash holds messages queued for the next page view.
type sessionClaims struct {
	Flash []string `json:"flash,omitempty"`
	jwt.RegisteredClaims
}

type session struct {
	claims sessionClaims
	secret []byte
	secure bool
}

// Session returns an Echo middleware that loads the HS256-signed session
// cookie, or starts a new session with a fresh id when the cookie is
// missing, expired or tampered with.  Handlers reach the session through
// AddFlash, Flashes and SessionID.
func Session(secret string, secure bool) echo.MiddlewareFunc {
	key := []byte(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := &session{secret: key, secure: secure}
			if ck, err := c.Cookie(SessionCookie); err == nil {
				if claims, ok := parseSession(ck.Value, key); ok {
					s.claims = *claims
				}
			}
			if s.claims.ID == "" {
				now := time.Now().UTC()
				s.claims = sessionClaims{RegisteredClaims: jwt.RegisteredClaims{
					ID:       uuid.NewString(),
					IssuedAt: jwt.NewNumericDate(now),
				}}
				if err := s.save(c); err != nil {
					return err
				}
			}
			c.Set(sessionKey, s)
			return next(c)
		}
	}
}

func parseSession(raw string, secret []byte) (*sessionClaims, bool) {
	claims := &sessionClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		// Reject anything that is not HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, false
	}
	return claims, true
}

// save signs the claims and sets the cookie on the response. The expiry
// slides with every write.
func (s *session) save(c echo.Context) error {
	exp := time.Now().UTC().Add(sessionTTL)
	s.claims.ExpiresAt = jwt.NewNumericDate(exp)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, s.claims).SignedString(s.secret)
	if err != nil {
		return err
	}
	c.Response().Header().Del(echo.HeaderSetCookie)
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    signed,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func current(c echo.Context) *session {
	s, _ := c.Get(sessionKey).(*session)
	return s
}

// SessionID returns the id of the current session, or "anon" when the
// Session middleware did not run.
func SessionID(c echo.Context) string {
	if s := current(c); s != nil && s.claims.ID != "" {
		return s.claims.ID
	}
	return "anon"
}

// AddFlash queues msg for the next rendered page.
func AddFlash(c echo.Context, msg string) error {
	s := current(c)
	if s == nil {
		return nil
	}
	s.claims.Flash = append(s.claims.Flash, msg)
	return s.save(c)
}

// HasFlashes reports whether messages are waiting to be shown.
func HasFlashes(c echo.Context) bool {
	s := current(c)
	return s != nil && len(s.claims.Flash) > 0
}

// Flashes returns the queued messages and clears them.
func Flashes(c echo.Context) []string {
	s := current(c)
	if s == nil || len(s.claims.Flash) == 0 {
		return nil
	}
	out := s.claims.Flash
	s.claims.Flash = nil
	if err := s.save(c); err != nil {
		c.Logger().Warnf("session: clearing flashes failed: %v", err)
	}
	return out
}
