package main

import (
	"log"

	"github.com/gateline/gateline/internal/client/cli"
	"github.com/gateline/gateline/internal/client/config"
)

func main() {

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(); err != nil {
		log.Fatalf("%v", err)
	}

}
