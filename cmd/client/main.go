package main

import (
	"log"

	"github.com/akosarev/taskvault/internal/client/cli"
	"github.com/akosarev/taskvault/internal/client/config"
)

func main() {

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run()
}
