package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/vecindario/barrios/core/place"
	"github.com/vecindario/barrios/core/user"
)

type guard int

const (
	authed guard = iota
	adminOnly
)

// placeGuards sets who may list and update the places of a kind. Creating is open to any
// authenticated user, deleting is admin only and reading one place is limited to its holders.
type placeGuards struct {
	list   guard
	update guard
}

func (g guard) middleware() []echo.MiddlewareFunc {
	if g == adminOnly {
		return []echo.MiddlewareFunc{adminMiddleware()}
	}
	return nil
}

type placeApi struct {
	svc      place.Service
	validate *validator.Validate
}

func registerPlaceAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc place.Service,
	usrSvc user.Service,
	validate *validator.Validate,
	guards placeGuards,
) {
	api := placeApi{svc: svc, validate: validate}

	pg := g.Group("/"+string(svc.Kind()), jwt)
	pg.GET("", api.query, guards.list.middleware()...)
	pg.POST("", api.create)

	pg.GET("/:id", api.retrieve, refOwnerOrAdminMiddleware(svc.Kind(), usrSvc))
	pg.PUT("/:id", api.update, guards.update.middleware()...)
	pg.DELETE("/:id", api.destroy, adminMiddleware())
}

func (api *placeApi) create(ctx echo.Context) error {
	var data place.NewPlace
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPlace")
	}
	if err := data.Validate(api.svc.Kind(), api.validate); err != nil {
		return err
	}

	p, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrapf(err, "creating %s", api.svc.Kind())
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *placeApi) query(ctx echo.Context) error {
	ordering := new(Ordering)
	ordering.Bind(ctx)

	places, err := api.svc.Query(ctx.Request().Context(), ordering.Orderings...)
	if err != nil {
		return errors.Wrapf(err, "querying %s", api.svc.Kind())
	}
	if places == nil {
		places = []place.Place{}
	}
	return ctx.JSON(http.StatusOK, places)
}

func (api *placeApi) retrieve(ctx echo.Context) error {
	p, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrapf(err, "finding %s", api.svc.Kind())
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *placeApi) update(ctx echo.Context) error {
	p, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrapf(err, "finding %s", api.svc.Kind())
	}

	var data place.UpdatePlace
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePlace")
	}
	if err = data.Validate(p, api.validate); err != nil {
		return err
	}

	p, err = api.svc.Update(ctx.Request().Context(), p.ID, data)
	if err != nil {
		return errors.Wrapf(err, "updating %s", api.svc.Kind())
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *placeApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrapf(err, "deleting %s", api.svc.Kind())
	}
	return ctx.NoContent(http.StatusNoContent)
}
