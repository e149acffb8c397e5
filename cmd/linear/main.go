package main

import (
	"os"

	"github.com/linearcli/linearcli/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
