package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/khalid-nowaf/pathtrie/pkg/cli"
)

func main() {
	err := cli.Run(os.Args[1:], os.Stdout, os.Stderr,
		kong.Configuration(kong.JSON, "~/.pathtrie.json", ".pathtrie.json"),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
