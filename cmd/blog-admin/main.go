package main

import (
	"fmt"
	"os"

	"blog-api/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(cli.OpenDatabase).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
