package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"microshop/internal/app"
	"microshop/internal/clients"
	"microshop/internal/config"
	"microshop/internal/repositories"
)

func main() {
	cfg := config.Load(config.ServiceOrder)

	var repo repositories.OrderRepository
	switch cfg.StoreDriver {
	case "gorm":
		db, err := repositories.OpenGORM(cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		repo, err = repositories.NewGORMOrderRepository(db)
		if err != nil {
			log.Fatalf("Failed to initialize order repository: %v", err)
		}
	default:
		repo = repositories.NewMemoryOrderRepository()
	}

	userClient := clients.NewUserClient(cfg.UserServiceURL, cfg.VerifyTimeout, cfg.HealthTimeout)
	fiberApp := app.NewOrderApp(repo, userClient, userClient)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting %s on %s (store: %s, user registry: %s)",
			config.ServiceOrder, cfg.Port, cfg.StoreDriver, cfg.UserServiceURL)
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
