package main

import (
	"os"

	"github.com/footstone/sqlguard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
