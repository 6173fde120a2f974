package main

import (
	"context"
	"database/sql"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/export"
	"github.com/trezcool/darasa/core/feedback"
	"github.com/trezcool/darasa/core/partner"
	"github.com/trezcool/darasa/core/report"
	"github.com/trezcool/darasa/core/user"
	blobsvc "github.com/trezcool/darasa/services/blob"
	cachesvc "github.com/trezcool/darasa/services/cache"
	emailsvc "github.com/trezcool/darasa/services/email"
	logsvc "github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/storage/database"
	sqlxrepos "github.com/trezcool/darasa/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()
	sdb := sqlx.NewDb(db, conf.Database.Engine)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	var storage core.FileStorage
	if conf.Debug {
		storage = blobsvc.NewDummyStorage()
	} else {
		storage, err = blobsvc.NewS3Storage(context.Background(), conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up blob storage: %v", err), err)
		}
	}

	var snapshots export.SnapshotCache
	if conf.Debug {
		snapshots = cachesvc.NewMemoryCache()
	} else {
		snapshots = cachesvc.NewRedisCache(conf, logger)
	}

	profileRepo := sqlxrepos.NewProfileRepository(sdb)
	usrSvc := user.NewService(sqlxrepos.NewUserRepository(sdb))
	feedbackSvc := feedback.NewService(sqlxrepos.NewFeedbackRepository(sdb), profileRepo, logger)
	reportSvc := report.NewService(sqlxrepos.NewReportRepository(sdb), profileRepo, logger)
	partnerSvc := partner.NewService(sqlxrepos.NewPartnerRepository(sdb), storage, logger)
	exportSvc := export.NewService(
		sqlxrepos.NewIdentityDirectory(sdb),
		profileRepo,
		snapshots,
		logger,
		conf.Export.DirectoryPageSize,
	)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err = http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:        conf,
			Logger:      logger,
			UserSvc:     usrSvc,
			FeedbackSvc: feedbackSvc,
			ReportSvc:   reportSvc,
			PartnerSvc:  partnerSvc,
			ExportSvc:   exportSvc,
			EmailSvc:    mailSvc,
			Validate:    validate,
			Translator:  translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
