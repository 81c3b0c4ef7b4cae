package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) initCounter() error {
	counter, err := cli.recSvc.InitCounter(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("recommendation counter created with %d neighborhoods\n", len(counter.Counts))
	return nil
}
