package main

import (
	"context"
	"time"

	"github.com/vecindario/barrios/core"
	"github.com/vecindario/barrios/core/user"
)

// createAdmin promotes the user holding `email` to ADMIN, or creates it.
// The password is reset in both cases.
func (cli *commandLine) createAdmin(email, nickname, pwd string) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)
	nickname = core.CleanString(nickname)
	now := time.Now().UTC()

	usr, err := cli.usrRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		if err = cli.usrRepo.CheckUniqueness(ctx, email, nickname); err != nil {
			return err
		}
		usr = user.User{
			Email:     email,
			Nickname:  nickname,
			Name:      nickname,
			Comments:  []string{},
			Leisure:   []string{},
			Jobs:      []string{},
			Schools:   []string{},
			CreatedAt: now,
		}
	}
	usr.Role = user.RoleAdmin
	usr.Blocked = false
	usr.UpdatedAt = now
	if err = usr.SetPassword(pwd); err != nil {
		return err
	}

	if usr.ID == "" {
		_, err = cli.usrRepo.CreateUser(ctx, usr)
	} else {
		_, err = cli.usrRepo.UpdateUser(ctx, usr)
	}
	return err
}
