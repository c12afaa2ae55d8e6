package main

import (
	"os"

	"github.com/joho/godotenv"
	_ "go.uber.org/automaxprocs"

	"github.com/DVA506/SmartMove/cmd/smartmove-console/app"
)

func main() {
	_ = godotenv.Load()

	if err := app.NewConsoleCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
