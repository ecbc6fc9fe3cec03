package main

import (
	"fmt"
	"os"

	"github.com/zkbugbounty/bountydeploy/internal/cli"
)

func main() {
	if err := cli.Execute(cli.NewRootCmd()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
