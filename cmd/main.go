package main

import (
	"os"

	"github.com/Satvikjoshi17/PrepForge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
