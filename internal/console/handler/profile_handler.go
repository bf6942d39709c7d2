package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	consolemw "github.com/memberhub/member-console/internal/console/middleware"
	"github.com/memberhub/member-console/internal/console/session"
	"github.com/memberhub/member-console/internal/memberapi"
)

// ProfileHandler serves the member's own profile: view, edit and account
// deletion.
type ProfileHandler struct {
	api    *memberapi.Client
	store  session.TokenStore
	logger zerolog.Logger
}

func NewProfileHandler(api *memberapi.Client, store session.TokenStore, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{api: api, store: store, logger: logger}
}

type profilePage struct {
	Role   string
	Email  string
	Flash  string
	Form   profileForm
	Errors map[string]string
}

// expireSession drops the stored token and cookie, then sends the browser
// back to the login page.
func expireSession(c echo.Context, store session.TokenStore, logger zerolog.Logger) error {
	if sid := consolemw.SessionIDFrom(c); sid != "" {
		if err := store.Clear(c.Request().Context(), sid); err != nil {
			logger.Error().Err(err).Msg("token store clear failed")
		}
	}
	consolemw.ClearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/?expired=1")
}

// Show renders the profile form, pre-filled from the API.
func (h *ProfileHandler) Show(c echo.Context) error {
	sess := consolemw.SessionFrom(c)

	member, err := h.api.GetMember(c.Request().Context(), sess.Token, sess.MemberID)
	if err != nil {
		if errors.Is(err, memberapi.ErrSessionExpired) {
			return expireSession(c, h.store, h.logger)
		}
		return err
	}

	page := profilePage{
		Role:  sess.Role,
		Email: member.Email,
		Form: profileForm{
			Name:        member.Name,
			Email:       member.Email,
			PhoneNumber: member.PhoneNumber,
		},
		Errors: map[string]string{},
	}
	if c.QueryParam("saved") == "1" {
		page.Flash = "Profile updated."
	}
	return c.Render(http.StatusOK, "profile", page)
}

// Update patches the member's own record. A blank password keeps the
// current one.
func (h *ProfileHandler) Update(c echo.Context) error {
	sess := consolemw.SessionFrom(c)

	var form profileForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}
	form.normalize()

	page := profilePage{Role: sess.Role, Email: sess.Email, Form: form, Errors: form.validate()}
	if len(page.Errors) > 0 {
		return c.Render(http.StatusUnprocessableEntity, "profile", page)
	}

	patch := memberapi.UpdateMemberInput{
		Name:        &form.Name,
		Email:       &form.Email,
		PhoneNumber: &form.PhoneNumber,
	}
	if form.Password != "" {
		patch.Password = &form.Password
	}

	if _, err := h.api.UpdateMember(c.Request().Context(), sess.Token, sess.MemberID, patch); err != nil {
		switch {
		case errors.Is(err, memberapi.ErrSessionExpired):
			return expireSession(c, h.store, h.logger)
		case errors.Is(err, memberapi.ErrConflict):
			page.Errors["email"] = "An account with this email already exists."
			return c.Render(http.StatusConflict, "profile", page)
		}
		h.logger.Error().Err(err).Msg("profile update failed")
		page.Errors["form"] = "Saving failed. Please try again."
		return c.Render(http.StatusBadGateway, "profile", page)
	}

	return c.Redirect(http.StatusSeeOther, "/profile?saved=1")
}

// Delete removes the member's own account and ends the session.
func (h *ProfileHandler) Delete(c echo.Context) error {
	sess := consolemw.SessionFrom(c)

	if err := h.api.DeleteMember(c.Request().Context(), sess.Token, sess.MemberID); err != nil {
		if errors.Is(err, memberapi.ErrSessionExpired) {
			return expireSession(c, h.store, h.logger)
		}
		return err
	}

	if sid := consolemw.SessionIDFrom(c); sid != "" {
		if err := h.store.Clear(c.Request().Context(), sid); err != nil {
			h.logger.Error().Err(err).Msg("token store clear failed")
		}
	}
	consolemw.ClearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/")
}
