package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/memberhub/member-console/internal/core/domain"
)

// RBAC admits only requests whose effective role (injected by Auth) is in
// the allowed set. Rejections surface as domain.ErrForbidden so the central
// error handler renders them like any other authorization failure.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
