package main

import (
	"os"

	"github.com/rustyeddy/perf2csv/cmd/perf2csv/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
