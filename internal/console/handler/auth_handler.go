package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	consolemw "github.com/memberhub/member-console/internal/console/middleware"
	"github.com/memberhub/member-console/internal/console/session"
	"github.com/memberhub/member-console/internal/memberapi"
)

// AuthHandler serves the landing page with its login and registration tabs
// and manages the console session lifecycle.
type AuthHandler struct {
	api    *memberapi.Client
	store  session.TokenStore
	secure bool
	logger zerolog.Logger
}

func NewAuthHandler(api *memberapi.Client, store session.TokenStore, secureCookies bool, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{api: api, store: store, secure: secureCookies, logger: logger}
}

// authPage is the template data for the landing page.
type authPage struct {
	Tab      string
	Flash    string
	Login    loginForm
	Register registerForm
	Errors   map[string]string
}

// Tabs renders the landing page. Already-authenticated visitors are sent
// straight to their profile.
func (h *AuthHandler) Tabs(c echo.Context) error {
	if sess := consolemw.Resolve(c, h.store, h.logger); sess.Authenticated {
		return c.Redirect(http.StatusSeeOther, "/profile")
	}

	page := authPage{Tab: "login", Errors: map[string]string{}}
	if c.QueryParam("registered") == "1" {
		page.Flash = "Account created. Please log in."
	}
	if c.QueryParam("expired") == "1" {
		page.Flash = "Your session has expired. Please log in again."
	}
	return c.Render(http.StatusOK, "auth", page)
}

// Login exchanges the submitted credentials for a bearer token, stores the
// token server-side under a fresh session id and hands the browser only
// that id.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}
	form.normalize()

	page := authPage{Tab: "login", Login: form, Errors: form.validate()}
	if len(page.Errors) > 0 {
		return c.Render(http.StatusUnprocessableEntity, "auth", page)
	}

	ctx := c.Request().Context()
	token, err := h.api.Login(ctx, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, memberapi.ErrUnauthorized) {
			page.Errors["form"] = "Invalid email or password."
			return c.Render(http.StatusUnauthorized, "auth", page)
		}
		h.logger.Error().Err(err).Msg("login request failed")
		page.Errors["form"] = "Login is temporarily unavailable. Please try again."
		return c.Render(http.StatusBadGateway, "auth", page)
	}

	sess := session.Derive(token, time.Now())
	if !sess.Authenticated {
		h.logger.Error().Msg("login returned a token without a usable session")
		page.Errors["form"] = "Your account has no role assigned. Contact an administrator."
		return c.Render(http.StatusUnprocessableEntity, "auth", page)
	}

	sid := uuid.NewString()
	if err := h.store.Set(ctx, sid, token, time.Until(sess.ExpiresAt)); err != nil {
		h.logger.Error().Err(err).Msg("token store write failed")
		page.Errors["form"] = "Login is temporarily unavailable. Please try again."
		return c.Render(http.StatusInternalServerError, "auth", page)
	}

	consolemw.SetSessionCookie(c, sid, sess.ExpiresAt, h.secure)
	return c.Redirect(http.StatusSeeOther, "/profile")
}

// Register creates the account through the public registration endpoint
// and bounces back to the login tab with a confirmation flash.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}
	form.normalize()

	page := authPage{Tab: "register", Register: form, Errors: form.validate()}
	if len(page.Errors) > 0 {
		return c.Render(http.StatusUnprocessableEntity, "auth", page)
	}

	_, err := h.api.CreateMember(c.Request().Context(), memberapi.CreateMemberInput{
		Name:        form.Name,
		Email:       form.Email,
		PhoneNumber: form.PhoneNumber,
		Password:    form.Password,
	})
	if err != nil {
		if errors.Is(err, memberapi.ErrConflict) {
			page.Errors["email"] = "An account with this email already exists."
			return c.Render(http.StatusConflict, "auth", page)
		}
		h.logger.Error().Err(err).Msg("registration request failed")
		page.Errors["form"] = "Registration is temporarily unavailable. Please try again."
		return c.Render(http.StatusBadGateway, "auth", page)
	}

	return c.Redirect(http.StatusSeeOther, "/?registered=1")
}

// Logout discards the stored token and expires the session cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(consolemw.SessionCookie); err == nil && cookie.Value != "" {
		if err := h.store.Clear(c.Request().Context(), cookie.Value); err != nil {
			h.logger.Error().Err(err).Msg("token store clear failed")
		}
	}
	consolemw.ClearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/")
}
