package main

import (
	"os"

	"github.com/javajack/pofill/cmd/pofill/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
