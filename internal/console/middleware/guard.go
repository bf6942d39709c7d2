// Package middleware holds the console's route guard. The guard resolves
// the stored bearer token into a session on every request — the store is
// always read fresh, never cached across requests.
package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/memberhub/member-console/internal/console/session"
)

const (
	// SessionCookie names the browser cookie carrying the console session id.
	SessionCookie = "memberhub_sid"

	sessionKey   = "session"
	sessionIDKey = "session_id"
)

// SetSessionCookie installs the session id cookie, expiring alongside the
// bearer token it points at.
func SetSessionCookie(c echo.Context, sid string, expires time.Time, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session id cookie.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// Resolve reads the session id cookie, fetches the stored token and derives
// the current session. A token that is present but no longer derives an
// authenticated session is stale: it is cleared from the store and the
// cookie is expired, so the next request starts clean.
func Resolve(c echo.Context, store session.TokenStore, log zerolog.Logger) session.Session {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return session.Session{}
	}

	ctx := c.Request().Context()
	token, err := store.Get(ctx, cookie.Value)
	if err != nil {
		log.Error().Err(err).Msg("token store read failed")
		return session.Session{}
	}

	sess := session.Derive(token, time.Now())
	if !sess.Authenticated && token != "" {
		if err := store.Clear(ctx, cookie.Value); err != nil {
			log.Error().Err(err).Msg("stale token cleanup failed")
		}
		ClearSessionCookie(c)
	}
	if sess.Authenticated {
		c.Set(sessionIDKey, cookie.Value)
	}
	return sess
}

// Guard admits only authenticated sessions whose role is in allowed.
// Unauthenticated requests are redirected to the login page; authenticated
// requests with the wrong role land on the profile page instead.
func Guard(store session.TokenStore, log zerolog.Logger, allowed ...string) echo.MiddlewareFunc {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := Resolve(c, store, log)
			if !sess.Authenticated {
				return c.Redirect(http.StatusSeeOther, "/")
			}
			if _, ok := allowedSet[sess.Role]; !ok {
				return c.Redirect(http.StatusSeeOther, "/profile")
			}
			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// SessionFrom returns the session the guard stored on the context.
func SessionFrom(c echo.Context) session.Session {
	sess, _ := c.Get(sessionKey).(session.Session)
	return sess
}

// SessionIDFrom returns the session id the guard resolved, if any.
func SessionIDFrom(c echo.Context) string {
	sid, _ := c.Get(sessionIDKey).(string)
	return sid
}
