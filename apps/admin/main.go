package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/export"
	cachesvc "github.com/trezcool/darasa/services/cache"
	logsvc "github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/storage/database"
	sqlxrepos "github.com/trezcool/darasa/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	svcLogger := logsvc.NewRollbarLogger(logger, conf)
	svcLogger.Enable(!conf.Debug)

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())
	sdb := sqlx.NewDb(db, conf.Database.Engine)

	exportSvc := export.NewService(
		sqlxrepos.NewIdentityDirectory(sdb),
		sqlxrepos.NewProfileRepository(sdb),
		cachesvc.NewMemoryCache(),
		svcLogger,
		conf.Export.DirectoryPageSize,
	)

	// start CLI
	cli := commandLine{
		db:        db,
		conf:      conf,
		usrRepo:   sqlxrepos.NewUserRepository(sdb),
		exportSvc: exportSvc,
		out:       os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
