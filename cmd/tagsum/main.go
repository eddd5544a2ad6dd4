package main

import (
	"os"

	"github.com/dshills/tagsum/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
