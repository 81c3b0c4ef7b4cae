package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/vecindario/barrios/core/comment"
	"github.com/vecindario/barrios/core/user"
)

type commentApi struct {
	svc      comment.Service
	usrSvc   user.Service
	validate *validator.Validate
}

func registerCommentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc comment.Service, usrSvc user.Service, validate *validator.Validate) {
	api := commentApi{svc: svc, usrSvc: usrSvc, validate: validate}

	cg := g.Group("/comments")
	cg.GET("", api.query)
	cg.GET("/:id", api.retrieve)

	// authed endpoints
	cg.POST("", api.create, jwt)
	cg.PUT("/:id", api.update, jwt, api.authorOrAdminMiddleware)
	cg.DELETE("/:id", api.destroy, jwt, api.authorOrAdminMiddleware)
}

// authorOrAdminMiddleware loads the comment into the context when the token's user wrote it or is ADMIN.
func (api *commentApi) authorOrAdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		usr, err := getContextUser(ctx, api.usrSvc)
		if err != nil {
			return err
		}
		cmt, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
		if err != nil {
			return errors.Wrap(err, "finding comment")
		}
		if cmt.Author != usr.ID && !usr.IsAdmin() {
			return errHttpForbidden
		}
		ctx.Set(objectContextKey, cmt)
		return next(ctx)
	}
}

func (api *commentApi) create(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return err
	}

	var data comment.NewComment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewComment")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}
	data.Author = usr.ID

	cmt, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating comment")
	}
	if _, err = api.usrSvc.AddRef(ctx.Request().Context(), usr.ID, user.AddRef{List: user.RefComments, ID: cmt.ID}); err != nil {
		// an unlinked comment is not kept
		if dErr := api.svc.Delete(ctx.Request().Context(), cmt.ID); dErr != nil {
			return errors.Wrapf(err, "linking comment to author (rollback failed: %v)", dErr)
		}
		return errors.Wrap(err, "linking comment to author")
	}
	return ctx.JSON(http.StatusCreated, cmt)
}

func (api *commentApi) query(ctx echo.Context) error {
	ordering := new(Ordering)
	ordering.Bind(ctx)

	cmts, err := api.svc.Query(ctx.Request().Context(), ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying comments")
	}
	if cmts == nil {
		cmts = []comment.Comment{}
	}
	return ctx.JSON(http.StatusOK, cmts)
}

func (api *commentApi) retrieve(ctx echo.Context) error {
	cmt, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding comment")
	}
	return ctx.JSON(http.StatusOK, cmt)
}

func (api *commentApi) update(ctx echo.Context) error {
	cmt, ok := ctx.Get(objectContextKey).(comment.Comment)
	if !ok {
		return errors.New("comment object not found in echo.Context")
	}

	var data comment.UpdateComment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateComment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	cmt, err := api.svc.Update(ctx.Request().Context(), cmt.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating comment")
	}
	return ctx.JSON(http.StatusOK, cmt)
}

func (api *commentApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting comment")
	}
	return ctx.NoContent(http.StatusNoContent)
}
