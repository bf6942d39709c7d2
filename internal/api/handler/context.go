package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memberhub/member-console/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both values must be
// non-empty (presence proves the middleware ran).
func ctxClaims(c echo.Context) (memberID, role string, err error) {
	memberID, _ = c.Get("member_id").(string)
	role, _ = c.Get("role").(string)
	if memberID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return memberID, role, nil
}

// requireAdminOrSelf gates member-scoped operations: admins may address any
// member, everyone else only their own record.
func requireAdminOrSelf(c echo.Context, targetID string) error {
	memberID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if role != "admin" && memberID != targetID {
		return domain.ErrForbidden
	}
	return nil
}
