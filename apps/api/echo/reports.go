package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/report"
)

type reportApi struct {
	svc *report.Service
}

func registerReportAPI(g *echo.Group, deps ServerDeps) {
	api := reportApi{svc: deps.ReportSvc}

	rg := g.Group("/reports/:scope")
	rg.GET("", api.query)
	rg.DELETE("/messages/:id", api.destroyMessage)
	rg.DELETE("/:id", api.dismiss)
}

func scopeParam(ctx echo.Context) report.Scope {
	return report.Scope(ctx.Param("scope"))
}

func (api *reportApi) query(ctx echo.Context) error {
	resolved, err := api.svc.Query(ctx.Request().Context(), scopeParam(ctx))
	if err != nil {
		if errors.Cause(err) == report.ErrUnknownScope {
			return errHttpNotFound
		}
		return errors.Wrap(err, "querying reports")
	}
	return ctx.JSON(http.StatusOK, resolved)
}

func (api *reportApi) destroyMessage(ctx echo.Context) error {
	err := api.svc.DeleteMessage(ctx.Request().Context(), scopeParam(ctx), ctx.Param("id"))
	if err != nil {
		switch errors.Cause(err) {
		case report.ErrUnknownScope, report.ErrNotFound:
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting reported message")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *reportApi) dismiss(ctx echo.Context) error {
	err := api.svc.Dismiss(ctx.Request().Context(), scopeParam(ctx), ctx.Param("id"))
	if err != nil {
		switch errors.Cause(err) {
		case report.ErrUnknownScope, report.ErrNotFound:
			return errHttpNotFound
		}
		return errors.Wrap(err, "dismissing report")
	}
	return ctx.NoContent(http.StatusNoContent)
}
