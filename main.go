package main

import (
	"os"

	"github.com/skillvet/skillvet/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
