package main

import (
	"context"
	"log"

	"gembreak-be/internal/bootstrap"
	"gembreak-be/internal/config"
	"gembreak-be/internal/server"
	"gembreak-be/internal/tracer"
	"gembreak-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.Connect(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	go func() {
		log.Println("Background: Starting activity consumer...")
		if err := container.ActivityService.Run(context.Background()); err != nil {
			log.Printf("Background consumer error: %v", err)
		}
	}()

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
