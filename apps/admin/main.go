package main

import (
	"context"
	"log"
	"os"

	"github.com/vecindario/barrios/core"
	"github.com/vecindario/barrios/core/recommend"
	logsvc "github.com/vecindario/barrios/services/logger"
	"github.com/vecindario/barrios/storage"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	// set up DB
	ctx := context.Background()
	repos, err := storage.Open(ctx, conf)
	if err != nil {
		logger.Fatal("setting up storage", err)
	}

	// start CLI
	cli := commandLine{
		usrRepo: repos.Users,
		recSvc:  recommend.NewService(repos.Counter),
	}
	err = cli.run(os.Args)
	if cErr := repos.Close(ctx); cErr != nil {
		logger.Error("closing storage", cErr)
	}
	logger.Close()

	if err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		os.Exit(1)
	}
}
