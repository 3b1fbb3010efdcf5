package main

import (
	"os"

	"github.com/fwm-platform/ecosystem-console/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
