package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/abu-huda81/shop_backend/internal/models"
	"github.com/abu-huda81/shop_backend/internal/repo"
	"github.com/abu-huda81/shop_backend/internal/tokens"
)

const userContextKey = "current_user"

// Guard resolves the bearer token to a live user row on every request.
// Tampered, expired and malformed tokens are indistinguishable to the
// caller: all of them are 401. The role check uses the stored role, so a
// token issued before a demotion stops opening admin doors immediately.
type Guard struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func NewGuard(db *gorm.DB, jwtSecret []byte) *Guard {
	return &Guard{Repo: repo.NewGormRepo(db), JWTSecret: jwtSecret}
}

func (g *Guard) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return g.requireWithValidator(next, nil)
}

// RequireRole is a plain equality check, no hierarchy: an admin does not
// satisfy a check for any other role.
func (g *Guard) RequireRole(role models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return g.requireWithValidator(next, func(u *models.User) error {
			if u.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
			}
			return nil
		})
	}
}

func (g *Guard) requireWithValidator(next echo.HandlerFunc, validator func(*models.User) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, ok := bearerToken(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.ClaimsFromToken(raw, g.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		id, err := claims.UserID()
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		user, err := g.Repo.GetUserByID(c.Request().Context(), id)
		if err != nil || !user.Active {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		if validator != nil {
			if err := validator(user); err != nil {
				return err
			}
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

func bearerToken(c echo.Context) (string, bool) {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if h == "" {
		return "", false
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}

// CurrentUser returns the user the guard resolved for this request.
func CurrentUser(c echo.Context) (*models.User, bool) {
	u, ok := c.Get(userContextKey).(*models.User)
	return u, ok
}
