package main

import (
	"os"

	"github.com/llehouerou/synaudio/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
