package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/feedback"
)

type feedbackApi struct {
	svc *feedback.Service
}

func registerFeedbackAPI(g *echo.Group, deps ServerDeps) {
	api := feedbackApi{svc: deps.FeedbackSvc}

	fg := g.Group("/feedback")
	fg.GET("", api.query)
	fg.GET("/stats", api.stats)
	fg.GET("/breakdown", api.breakdown)
	fg.DELETE("/:id", api.destroy)
}

func (api *feedbackApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Query(ctx.Request().Context()))
}

func (api *feedbackApi) stats(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Stats(ctx.Request().Context()))
}

func (api *feedbackApi) breakdown(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Breakdown(ctx.Request().Context()))
}

func (api *feedbackApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == feedback.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting feedback")
	}
	return ctx.NoContent(http.StatusNoContent)
}
