package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/vecindario/barrios/core/recommend"
	"github.com/vecindario/barrios/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	usrRepo user.Repository
	recSvc  recommend.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  createadmin -email EMAIL -nickname NICKNAME - create an admin or promote an existing user")
	fmt.Println("  resetpassword -email EMAIL - reset user's password")
	fmt.Println("  blockuser -email EMAIL [-unblock] - block (or unblock) a user")
	fmt.Println("  initcounter - create the recommendation counter")
}

// promptPassword reads a password from the terminal. An empty password prints the usage.
func promptPassword(cmd *flag.FlagSet) (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		cmd.Usage()
		return "", errHelp
	}
	return string(pwd), nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	createAdminCmd := flag.NewFlagSet("createadmin", flag.ContinueOnError)
	createAdminEmail := createAdminCmd.String("email", "", "The admin's email. The password will be prompted next.")
	createAdminNickname := createAdminCmd.String("nickname", "", "The admin's nickname, used when the user is created.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ContinueOnError)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The user's email. The password will be prompted next.")

	blockUserCmd := flag.NewFlagSet("blockuser", flag.ContinueOnError)
	blockUserEmail := blockUserCmd.String("email", "", "The user's email.")
	blockUserUnblock := blockUserCmd.Bool("unblock", false, "Lift the block instead.")

	switch args[1] {
	case "createadmin":
		if err := createAdminCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *createAdminEmail == "" || *createAdminNickname == "" {
			createAdminCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword(createAdminCmd)
		if err != nil {
			return err
		}
		return cli.createAdmin(*createAdminEmail, *createAdminNickname, pwd)

	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword(resetPasswordCmd)
		if err != nil {
			return err
		}
		return cli.resetPassword(*resetPasswordEmail, pwd)

	case "blockuser":
		if err := blockUserCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *blockUserEmail == "" {
			blockUserCmd.Usage()
			return errHelp
		}
		return cli.blockUser(*blockUserEmail, !*blockUserUnblock)

	case "initcounter":
		return cli.initCounter()

	default:
		cli.printUsage()
		return errHelp
	}
}
