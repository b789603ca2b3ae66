package main

import (
	"fmt"
	"os"

	"github.com/ppiankov/stemsolver/internal/cli"
	"github.com/ppiankov/stemsolver/internal/util"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		util.Exit(util.CodeFor(err))
	}
}
