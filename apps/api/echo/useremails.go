package echoapi

import (
	"net/http"
	"net/mail"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/export"
)

type userEmailApi struct {
	svc      *export.Service
	mailSvc  core.EmailService
	validate *validator.Validate
	conf     *core.Config
}

func registerUserEmailAPI(g *echo.Group, deps ServerDeps) {
	api := userEmailApi{
		svc:      deps.ExportSvc,
		mailSvc:  deps.EmailSvc,
		validate: deps.Validate,
		conf:     deps.Conf,
	}

	ug := g.Group("/user-emails")
	ug.GET("", api.query)
	ug.GET("/all", api.queryAll)
	ug.POST("/send", api.send)
}

func (api *userEmailApi) query(ctx echo.Context) error {
	q := export.PageQueryFromValues(ctx.QueryParams(), api.conf.Export.PageSizeOptions)
	page, err := api.svc.ListUsers(ctx.Request().Context(), q.Page, q.Limit, q.Search)
	if err != nil {
		return errors.Wrap(err, "listing user emails")
	}
	return ctx.JSON(http.StatusOK, page)
}

func (api *userEmailApi) queryAll(ctx echo.Context) error {
	emails, err := api.svc.AllEmails(ctx.Request().Context(), ctx.QueryParam("q"))
	if err != nil {
		return errors.Wrap(err, "listing all user emails")
	}
	return ctx.JSON(http.StatusOK, AllEmailsResponse{Emails: emails})
}

func (api *userEmailApi) send(ctx echo.Context) error {
	var data SendEmailRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SendEmailRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	// one message per recipient; recipients must not see each other
	emails := export.DedupEmails(data.Emails)
	messages := make([]*core.EmailMessage, 0, len(emails))
	for _, email := range emails {
		messages = append(messages, &core.EmailMessage{
			To:      []mail.Address{{Address: email}},
			Subject: data.Subject,
			BodyStr: data.Body,
		})
	}
	api.mailSvc.SendMessages(messages...)

	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Emails queued for delivery."})
}

type (
	AllEmailsResponse struct {
		Emails []string `json:"emails"`
	}

	SendEmailRequest struct {
		Emails  []string `json:"emails" validate:"required,min=1,dive,email"`
		Subject string   `json:"subject" validate:"required"`
		Body    string   `json:"body" validate:"required"`
	}
)

func (sr *SendEmailRequest) Validate(validate *validator.Validate) error {
	sr.Subject = core.CleanString(sr.Subject)
	return validate.Struct(sr)
}
