package main

import (
	"os"

	"github.com/jackc/pgcopy/cmd/pgcopy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
