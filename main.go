package main

import (
	"os"

	"github.com/harrisonrobin/taskmgr/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
