package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/partner"
)

type partnerApi struct {
	svc      *partner.Service
	validate *validator.Validate
}

func registerPartnerAPI(g *echo.Group, deps ServerDeps) {
	api := partnerApi{svc: deps.PartnerSvc, validate: deps.Validate}

	pg := g.Group("/partners")
	pg.GET("", api.query)
	pg.POST("", api.create)
	pg.POST("/logo", api.uploadLogo)
	pg.PUT("/:id", api.update)
	pg.DELETE("/:id", api.destroy)
	pg.POST("/:id/featured", api.toggleFeatured)
}

func (api *partnerApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Query(ctx.Request().Context()))
}

func (api *partnerApi) create(ctx echo.Context) error {
	var data partner.NewPartner
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPartner")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating partner")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *partnerApi) update(ctx echo.Context) error {
	var data partner.UpdatePartner
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePartner")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == partner.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating partner")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *partnerApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == partner.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting partner")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *partnerApi) toggleFeatured(ctx echo.Context) error {
	p, err := api.svc.ToggleFeatured(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == partner.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "toggling featured partner")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *partnerApi) uploadLogo(ctx echo.Context) error {
	fileHdr, err := ctx.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	file, err := fileHdr.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded logo")
	}
	defer file.Close()

	url, err := api.svc.UploadLogo(
		ctx.Request().Context(),
		fileHdr.Filename,
		fileHdr.Header.Get("Content-Type"),
		fileHdr.Size,
		file,
	)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LogoUploadResponse{URL: url})
}

type LogoUploadResponse struct {
	URL string `json:"url"`
}
