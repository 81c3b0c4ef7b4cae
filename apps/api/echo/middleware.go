package echoapi

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/vecindario/barrios/core"
	"github.com/vecindario/barrios/core/place"
	"github.com/vecindario/barrios/core/user"
)

const objectContextKey = "object"

func newRequestID() string {
	return uuid.New().String()
}

// jwtMiddleware verifies the token, then loads its user into the context.
// Deleted accounts are unauthorized and blocked ones are refused, whatever the token says.
func jwtMiddleware(conf *core.Config, svc user.Service) echo.MiddlewareFunc {
	verify := middleware.JWTWithConfig(newJWTConfig(conf))
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(func(ctx echo.Context) error {
			if _, err := getContextUser(ctx, svc); err != nil {
				return err
			}
			return next(ctx)
		})
	}
}

// adminMiddleware checks the stored role of the user loaded by jwtMiddleware.
func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, ok := ctx.Get(userContextKey).(user.User)
			if !ok {
				return errUnauthorized
			}
			if usr.IsAdmin() {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// ctxUserOrAdminMiddleware loads the user named by `:id` into the context, if it is the token's user or an ADMIN.
func ctxUserOrAdminMiddleware(svc user.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctxUsr, err := getContextUser(ctx, svc)
			if err != nil {
				return err
			}

			if ctx.Param("id") == ctxUsr.ID || ctxUsr.IsAdmin() {
				if usr, err := svc.GetByID(ctx.Request().Context(), ctx.Param("id")); err == nil {
					ctx.Set(objectContextKey, usr)
					return next(ctx)
				} else if errors.Cause(err) != user.ErrNotFound {
					return errors.Wrap(err, "finding user by ID")
				}
			}
			return errHttpNotFound
		}
	}
}

// refOwnerOrAdminMiddleware only lets through ADMINs and users holding `:id` in the reference list of the place kind.
func refOwnerOrAdminMiddleware(kind place.Kind, svc user.Service) echo.MiddlewareFunc {
	list := user.RefList(kind)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := getContextUser(ctx, svc)
			if err != nil {
				return err
			}
			if usr.IsAdmin() || usr.HasRef(list, ctx.Param("id")) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
