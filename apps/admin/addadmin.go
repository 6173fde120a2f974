package main

import (
	"context"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

// addAdmin updates or creates an admin account with full roles.
func (cli *commandLine) addAdmin(name, uname, email, pwd string) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	usr, err := cli.usrRepo.GetUserByUsernameOrEmail(ctx, uname)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr, err = cli.usrRepo.GetUserByUsernameOrEmail(ctx, email)
		if err != nil && err != user.ErrNotFound {
			return err
		}
	}

	usr.Name = core.CleanString(name)
	usr.Username = uname
	usr.Email = email
	usr.Roles = user.AllRoles
	usr.IsActive = true
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	_, err = cli.usrRepo.UpdateOrCreateUser(ctx, usr)
	return err
}
