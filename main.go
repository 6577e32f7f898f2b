package main

import (
	"os"

	"github.com/atulsharma648-byte/ASMan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
