package middleware

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"usercenter/internal/apperr"
	"usercenter/internal/model"
	"usercenter/internal/repository"
	"usercenter/internal/session"
)

// AdminOnly guards admin endpoints. Two checks are authoritative, in this
// order: the legacy coarse role flag on the user record, then a binding to the
// reserved ADMIN role. The flag wins when the two disagree.
func AdminOnly(roles repository.RoleRepository, bindings repository.UserRoleRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			sess := session.FromContext(c)
			if sess == nil {
				return apperr.NotLogin()
			}
			user, ok, err := session.Identity(ctx, sess)
			if err != nil {
				return fmt.Errorf("read login state: %w", err)
			}
			if !ok {
				return apperr.NotLogin()
			}

			if user.UserRole == model.RoleAdmin {
				return next(c)
			}

			adminRole, err := roles.FindActiveByKey(ctx, model.AdminRoleKey)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// No admin role exists, so nothing can be authorized
					// through the binding path.
					return apperr.NoAuth("no permission")
				}
				return fmt.Errorf("look up admin role: %w", err)
			}

			bound, err := bindings.Exists(ctx, user.ID, adminRole.ID)
			if err != nil {
				return fmt.Errorf("check admin binding: %w", err)
			}
			if !bound {
				return apperr.NoAuth("no permission")
			}
			return next(c)
		}
	}
}
