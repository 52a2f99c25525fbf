package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"microshop/internal/app"
	"microshop/internal/config"
	"microshop/internal/repositories"
)

func main() {
	cfg := config.Load(config.ServiceUser)

	var repo repositories.UserRepository
	switch cfg.StoreDriver {
	case "gorm":
		db, err := repositories.OpenGORM(cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		repo, err = repositories.NewGORMUserRepository(db)
		if err != nil {
			log.Fatalf("Failed to initialize user repository: %v", err)
		}
	default:
		repo = repositories.NewMemoryUserRepository()
	}

	fiberApp := app.NewUserApp(repo)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting %s on %s (store: %s)", config.ServiceUser, cfg.Port, cfg.StoreDriver)
		if err := fiberApp.Listen(cfg.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := fiberApp.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
