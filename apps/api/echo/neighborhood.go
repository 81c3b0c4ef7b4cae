package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/vecindario/barrios/core/neighborhood"
)

type neighborhoodApi struct {
	svc      neighborhood.Service
	validate *validator.Validate
}

func registerNeighborhoodAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc neighborhood.Service, validate *validator.Validate) {
	api := neighborhoodApi{svc: svc, validate: validate}

	ng := g.Group("/neighborhoods", jwt)
	ng.GET("", api.query, adminMiddleware())
	ng.POST("", api.create, adminMiddleware())
	ng.DELETE("", api.destroyAll, adminMiddleware())

	ng.GET("/:id", api.retrieve)
	ng.PUT("/:id", api.update, adminMiddleware())
	ng.DELETE("/:id", api.destroy, adminMiddleware())
	ng.POST("/:id/comments", api.addComment)
}

func (api *neighborhoodApi) create(ctx echo.Context) error {
	var data neighborhood.NewNeighborhood
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNeighborhood")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	nb, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating neighborhood")
	}
	return ctx.JSON(http.StatusCreated, nb)
}

func (api *neighborhoodApi) query(ctx echo.Context) error {
	ordering := new(Ordering)
	ordering.Bind(ctx)

	nbs, err := api.svc.Query(ctx.Request().Context(), ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying neighborhoods")
	}
	if nbs == nil {
		nbs = []neighborhood.Neighborhood{}
	}
	return ctx.JSON(http.StatusOK, nbs)
}

func (api *neighborhoodApi) retrieve(ctx echo.Context) error {
	nb, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding neighborhood")
	}
	return ctx.JSON(http.StatusOK, nb)
}

func (api *neighborhoodApi) update(ctx echo.Context) error {
	nb, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding neighborhood")
	}

	var data neighborhood.UpdateNeighborhood
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateNeighborhood")
	}
	if err = data.Validate(nb, api.validate); err != nil {
		return err
	}

	nb, err = api.svc.Update(ctx.Request().Context(), nb.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating neighborhood")
	}
	return ctx.JSON(http.StatusOK, nb)
}

func (api *neighborhoodApi) addComment(ctx echo.Context) error {
	var data neighborhood.AddComment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AddComment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	nb, err := api.svc.AddComment(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "adding neighborhood comment")
	}
	return ctx.JSON(http.StatusOK, nb)
}

func (api *neighborhoodApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting neighborhood")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *neighborhoodApi) destroyAll(ctx echo.Context) error {
	if _, err := api.svc.DeleteAll(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "deleting neighborhoods")
	}
	return ctx.NoContent(http.StatusNoContent)
}
