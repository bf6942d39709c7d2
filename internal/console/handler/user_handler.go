package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	consolemw "github.com/memberhub/member-console/internal/console/middleware"
)

// UserHandler serves the plain member landing page.
type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

type userPage struct {
	Role  string
	Email string
}

func (h *UserHandler) Landing(c echo.Context) error {
	sess := consolemw.SessionFrom(c)
	return c.Render(http.StatusOK, "user", userPage{Role: sess.Role, Email: sess.Email})
}
