package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	consolemw "github.com/memberhub/member-console/internal/console/middleware"
	"github.com/memberhub/member-console/internal/console/service"
	"github.com/memberhub/member-console/internal/console/session"
	"github.com/memberhub/member-console/internal/memberapi"
)

// AdminHandler serves the user management grid.
type AdminHandler struct {
	admin  *service.AdminService
	store  session.TokenStore
	logger zerolog.Logger
}

func NewAdminHandler(admin *service.AdminService, store session.TokenStore, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, store: store, logger: logger}
}

// gridRow is one member in the grid, with the role already collapsed to
// its display form.
type gridRow struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
	Role        string
}

type adminPage struct {
	Role   string
	Email  string
	Flash  string
	Rows   []gridRow
	EditID string
	Form   adminMemberForm
	Errors map[string]string
}

func toGridRows(members []memberapi.Member) []gridRow {
	rows := make([]gridRow, 0, len(members))
	for _, m := range members {
		rows = append(rows, gridRow{
			ID:          m.ID,
			Name:        m.Name,
			Email:       m.Email,
			PhoneNumber: m.PhoneNumber,
			Role:        service.DisplayRole(m.Roles),
		})
	}
	return rows
}

// Grid renders the member list. With ?edit=<id> the matching row's values
// pre-fill the form for editing.
func (h *AdminHandler) Grid(c echo.Context) error {
	sess := consolemw.SessionFrom(c)
	ctx := c.Request().Context()

	members, err := h.admin.List(ctx, sess.Token)
	if err != nil {
		if errors.Is(err, memberapi.ErrSessionExpired) {
			return expireSession(c, h.store, h.logger)
		}
		return err
	}

	page := adminPage{Role: sess.Role, Email: sess.Email, Rows: toGridRows(members), Errors: map[string]string{}}
	switch c.QueryParam("flash") {
	case "created":
		page.Flash = "Member created."
	case "updated":
		page.Flash = "Member updated."
	case "deleted":
		page.Flash = "Member deleted."
	}

	if editID := c.QueryParam("edit"); editID != "" {
		for _, row := range page.Rows {
			if row.ID == editID {
				page.EditID = editID
				page.Form = adminMemberForm{
					Name:        row.Name,
					Email:       row.Email,
					PhoneNumber: row.PhoneNumber,
					Role:        row.Role,
				}
				break
			}
		}
	}
	return c.Render(http.StatusOK, "admin", page)
}

// renderGridError re-renders the grid with the submitted form and its
// errors, preserving the current member list.
func (h *AdminHandler) renderGridError(c echo.Context, status int, editID string, form adminMemberForm, errs map[string]string) error {
	sess := consolemw.SessionFrom(c)
	members, err := h.admin.List(c.Request().Context(), sess.Token)
	if err != nil {
		if errors.Is(err, memberapi.ErrSessionExpired) {
			return expireSession(c, h.store, h.logger)
		}
		return err
	}
	return c.Render(status, "admin", adminPage{
		Role:   sess.Role,
		Email:  sess.Email,
		Rows:   toGridRows(members),
		EditID: editID,
		Form:   form,
		Errors: errs,
	})
}

// Create adds a member from the grid form. The account gets a placeholder
// password; the member changes it from their profile.
func (h *AdminHandler) Create(c echo.Context) error {
	sess := consolemw.SessionFrom(c)

	var form adminMemberForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}
	form.normalize()

	if errs := form.validate(); len(errs) > 0 {
		return h.renderGridError(c, http.StatusUnprocessableEntity, "", form, errs)
	}

	_, err := h.admin.Create(c.Request().Context(), sess.Token, service.CreateMemberInput{
		Name:        form.Name,
		Email:       form.Email,
		PhoneNumber: form.PhoneNumber,
		Role:        form.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, memberapi.ErrSessionExpired):
			return expireSession(c, h.store, h.logger)
		case errors.Is(err, memberapi.ErrConflict):
			return h.renderGridError(c, http.StatusConflict, "", form,
				map[string]string{"email": "An account with this email already exists."})
		}
		h.logger.Error().Err(err).Msg("member creation failed")
		return h.renderGridError(c, http.StatusBadGateway, "", form,
			map[string]string{"form": "Creating the member failed. Please try again."})
	}

	return c.Redirect(http.StatusSeeOther, "/admin?flash=created")
}

// Update edits a member from the grid form.
func (h *AdminHandler) Update(c echo.Context) error {
	sess := consolemw.SessionFrom(c)
	id := c.Param("id")

	var form adminMemberForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}
	form.normalize()

	if errs := form.validate(); len(errs) > 0 {
		return h.renderGridError(c, http.StatusUnprocessableEntity, id, form, errs)
	}

	_, err := h.admin.Update(c.Request().Context(), sess.Token, id, service.UpdateMemberInput{
		Name:        form.Name,
		Email:       form.Email,
		PhoneNumber: form.PhoneNumber,
		Role:        form.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, memberapi.ErrSessionExpired):
			return expireSession(c, h.store, h.logger)
		case errors.Is(err, memberapi.ErrNotFound):
			return c.Redirect(http.StatusSeeOther, "/admin")
		case errors.Is(err, memberapi.ErrConflict):
			return h.renderGridError(c, http.StatusConflict, id, form,
				map[string]string{"email": "An account with this email already exists."})
		}
		h.logger.Error().Err(err).Msg("member update failed")
		return h.renderGridError(c, http.StatusBadGateway, id, form,
			map[string]string{"form": "Updating the member failed. Please try again."})
	}

	return c.Redirect(http.StatusSeeOther, "/admin?flash=updated")
}

// Delete removes a member from the grid.
func (h *AdminHandler) Delete(c echo.Context) error {
	sess := consolemw.SessionFrom(c)
	id := c.Param("id")

	if err := h.admin.Delete(c.Request().Context(), sess.Token, id); err != nil {
		switch {
		case errors.Is(err, memberapi.ErrSessionExpired):
			return expireSession(c, h.store, h.logger)
		case errors.Is(err, memberapi.ErrNotFound):
			// Already gone; the grid refresh reflects that.
			return c.Redirect(http.StatusSeeOther, "/admin")
		}
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/admin?flash=deleted")
}
