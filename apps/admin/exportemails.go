package main

import (
	"context"
	"fmt"

	"github.com/trezcool/darasa/core/export"
)

// exportEmails walks the export view the way the dashboard does: load a page,
// select rows, resolve the selected emails. With -all it selects every
// matching user across all pages; otherwise it selects the requested page.
func (cli *commandLine) exportEmails(query string, limit, page int, all bool) error {
	ctx := context.Background()
	ctrl := export.NewController(cli.exportSvc, cli.conf.Export)

	q := export.PageQuery{Page: page, Limit: limit, Search: query}
	if err := ctrl.Load(ctx, q); err != nil {
		return err
	}

	if all {
		if err := ctrl.SelectAllMatching(ctx); err != nil {
			return err
		}
	} else {
		ctrl.ToggleAllOnPage()
	}

	emails, err := ctrl.ResolveSelectedEmails(ctx)
	if err != nil {
		return err
	}
	for _, email := range emails {
		fmt.Fprintln(cli.out, email)
	}
	fmt.Fprintf(cli.out, "exported %d emails (%d users matching)\n", len(emails), ctrl.Total())
	return nil
}
