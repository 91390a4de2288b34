package main

import (
	"context"
	"log"

	"todokeeper/internal/bootstrap"
	"todokeeper/internal/config"
	"todokeeper/internal/tui"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	backend, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer backend.Close()

	if err := tui.Run(ctx, backend.Auth, backend.Tasks, backend.Categories); err != nil {
		log.Fatalf("%v", err)
	}

}
