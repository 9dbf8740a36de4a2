package main

import (
	"context"
	"log"

	"github.com/avolkovx/userdesk/internal/client/cli"
	"github.com/avolkovx/userdesk/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
