package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/export"
	"github.com/trezcool/darasa/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db        *sql.DB
	conf      *core.Config
	usrRepo   user.Repository
	exportSvc export.Fetcher
	out       io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  addadmin -name NAME -username USERNAME -email EMAIL - add (or update) an admin account")
	fmt.Println("  resetpassword -username USERNAME|EMAIL - reset an admin's password")
	fmt.Println("  migrate COMMAND [ARGS] - run database migrations (goose commands)")
	fmt.Println("  exportemails [-q QUERY] [-limit N] [-page N] [-all] - export user emails")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addAdminCmd := flag.NewFlagSet("addadmin", flag.ExitOnError)
	addAdminName := addAdminCmd.String("name", "", "The admin's full name.")
	addAdminUname := addAdminCmd.String("username", "", "The admin's username.")
	addAdminEmail := addAdminCmd.String("email", "", "The admin's email. The password will be prompted next.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The admin's username or email. The password will be prompted next.")

	exportEmailsCmd := flag.NewFlagSet("exportemails", flag.ExitOnError)
	exportQuery := exportEmailsCmd.String("q", "", "Only export users matching this search query.")
	exportLimit := exportEmailsCmd.Int("limit", 0, "Page size.")
	exportPage := exportEmailsCmd.Int("page", 1, "Export only this page.")
	exportAll := exportEmailsCmd.Bool("all", false, "Export every matching user across all pages.")

	switch args[1] {
	case "addadmin":
		if err := addAdminCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addAdminUname == "" || *addAdminEmail == "" {
			addAdminCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addAdminCmd.Usage()
			return errHelp
		}
		return cli.addAdmin(*addAdminName, *addAdminUname, *addAdminEmail, pwd)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordUname, pwd)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "exportemails":
		if err := exportEmailsCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.exportEmails(*exportQuery, *exportLimit, *exportPage, *exportAll)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
