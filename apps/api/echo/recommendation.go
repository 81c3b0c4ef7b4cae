package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/vecindario/barrios/core/recommend"
)

type (
	RecommendationRequest struct {
		Responses []string `json:"responses"`
	}

	RecommendationResponse struct {
		Recommendation string `json:"recommendation"`
		Determined     bool   `json:"determined"`
	}
)

type recommendationApi struct {
	svc recommend.Service
}

func registerRecommendationAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc recommend.Service) {
	api := recommendationApi{svc: svc}

	rg := g.Group("/recommendation", jwt)
	rg.POST("", api.recommend)

	sg := rg.Group("/stats", adminMiddleware())
	sg.GET("", api.stats)
	sg.POST("", api.initStats)
	sg.DELETE("", api.deleteStats)
}

// recommend evaluates the answers and counts the determined results. Answers are kept as sent,
// unknown or padding values simply fail to match.
func (api *recommendationApi) recommend(ctx echo.Context) error {
	var data RecommendationRequest
	if err := ctx.Bind(&data); err != nil {
		return errEmptyResponses
	}
	if len(data.Responses) == 0 {
		return errEmptyResponses
	}

	res := api.svc.Recommend(data.Responses)
	if res.Determined() {
		// a missing counter is a server fault here, not a 404
		if err := api.svc.RecordRecommendation(ctx.Request().Context(), res.Neighborhood); err != nil {
			return errors.Wrapf(&internalError{err: err}, "recording recommendation for %s", res.Neighborhood)
		}
	}
	return ctx.JSON(http.StatusOK, RecommendationResponse{Recommendation: res.String(), Determined: res.Determined()})
}

func (api *recommendationApi) stats(ctx echo.Context) error {
	counter, err := api.svc.GetCounter(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting counter")
	}
	return ctx.JSON(http.StatusOK, counter)
}

func (api *recommendationApi) initStats(ctx echo.Context) error {
	counter, err := api.svc.InitCounter(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "creating counter")
	}
	return ctx.JSON(http.StatusCreated, counter)
}

func (api *recommendationApi) deleteStats(ctx echo.Context) error {
	if err := api.svc.DeleteCounter(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "deleting counter")
	}
	return ctx.NoContent(http.StatusNoContent)
}
