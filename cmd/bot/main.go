package main

import (
	"log"

	"github.com/joho/godotenv"

	corecmd "toolsbot/core/cmd"
	"toolsbot/internal/app"
)

func main() {
	_ = godotenv.Load()

	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig:        app.LoadConfig,
		Bootstrap:         app.Bootstrap,
	})
	if err != nil {
		log.Fatal(err)
	}
}
