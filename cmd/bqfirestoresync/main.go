package main

import (
	"os"

	"github.com/npsdata/bqfirestoresync/cmd/bqfirestoresync/cmd"
	"github.com/npsdata/bqfirestoresync/internal/common"
)

func main() {
	common.ConfigureLogging()
	err := cmd.RootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}
