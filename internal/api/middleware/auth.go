package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Auth validates the JWT and injects claims into context. The roles claim is
// an ordered list; its first entry (lower-cased) is exposed as "role".
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			memberID, _ := claims["sub"].(string)
			if memberID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
			}

			roles := rolesClaim(claims["roles"])
			if len(roles) == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing roles")
			}

			email, _ := claims["email"].(string)

			c.Set("member_id", memberID)
			c.Set("email", email)
			c.Set("roles", roles)
			c.Set("role", strings.ToLower(roles[0]))

			return next(c)
		}
	}
}

// rolesClaim converts the decoded roles claim into a string slice. JSON
// arrays decode as []interface{}; anything else yields nil.
func rolesClaim(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		s, ok := r.(string)
		if !ok || s == "" {
			return nil
		}
		roles = append(roles, s)
	}
	return roles
}
