package main

import (
	"context"
	"log"

	"todokeeper/internal/bootstrap"
	"todokeeper/internal/cli"
	"todokeeper/internal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	backend, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer backend.Close()

	app := cli.NewApp(backend.Auth, backend.Accounts, backend.Tasks, backend.Categories)
	app.Run(ctx)

}
