package main

import (
	"os"

	"github.com/headinthebox/async-await/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
