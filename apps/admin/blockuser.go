package main

import (
	"context"
	"fmt"
	"time"

	"github.com/vecindario/barrios/core"
)

func (cli *commandLine) blockUser(email string, blocked bool) error {
	ctx := context.Background()
	usr, err := cli.usrRepo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}
	usr.Blocked = blocked
	usr.UpdatedAt = time.Now().UTC()
	if _, err = cli.usrRepo.UpdateUser(ctx, usr); err != nil {
		return err
	}

	state := "blocked"
	if !blocked {
		state = "unblocked"
	}
	fmt.Printf("%s (%s) %s\n", usr.Nickname, usr.Email, state)
	return nil
}
