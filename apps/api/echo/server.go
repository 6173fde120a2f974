package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/export"
	"github.com/trezcool/darasa/core/feedback"
	"github.com/trezcool/darasa/core/partner"
	"github.com/trezcool/darasa/core/report"
	"github.com/trezcool/darasa/core/user"
)

type (
	ServerDeps struct {
		Conf        *core.Config
		Logger      core.Logger
		UserSvc     *user.Service
		FeedbackSvc *feedback.Service
		ReportSvc   *report.Service
		PartnerSvc  *partner.Service
		ExportSvc   *export.Service
		EmailSvc    core.EmailService
		Validate    *validator.Validate
		Translator  ut.Translator
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf
	configureAuth(conf)

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	admin := v1.Group("/admin")
	registerAuthAPI(admin, s.deps)

	// all dashboard endpoints require an authenticated admin
	ag := admin.Group("", jwt, adminMiddleware())
	registerFeedbackAPI(ag, s.deps)
	registerReportAPI(ag, s.deps)
	registerPartnerAPI(ag, s.deps)
	registerUserEmailAPI(ag, s.deps)
}

func (s *Server) Start() {
	s.errs <- s.app.Start(s.deps.Conf.Server.Address)
}

func (s *Server) Errors() <-chan error {
	return s.errs
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Darasa Admin API!")
}
