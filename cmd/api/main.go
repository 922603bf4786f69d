package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openkitchen/recipeshare/config"
	"github.com/openkitchen/recipeshare/internal/api"
	"github.com/openkitchen/recipeshare/internal/database"
	"github.com/openkitchen/recipeshare/internal/router"
	"github.com/openkitchen/recipeshare/internal/server"
	"github.com/openkitchen/recipeshare/internal/service"
	"github.com/openkitchen/recipeshare/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Sessions live in Redis; fall back to process memory when it is not
	// reachable so the app still comes up in development.
	var store session.Store
	if redisClient, err := database.NewRedisClient(cfg); err != nil {
		log.Printf("Warning: Redis unavailable, using in-memory sessions: %v", err)
		store = session.NewMemoryStore()
	} else {
		store = session.NewRedisStore(redisClient, cfg.SessionTTL)
	}

	authService := service.NewAuthService(db)
	recipeService := service.NewRecipeService(db)
	searchService := service.NewSearchService(db)

	authHandler := api.NewAuthHandler(authService, store)
	recipeHandler := api.NewRecipeHandler(recipeService, store)
	searchHandler := api.NewSearchHandler(searchService, store)

	engine := router.Setup(store, authHandler, recipeHandler, searchHandler, cfg.TemplatesGlob)
	srv := server.New(cfg.ServerPort, engine)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		log.Printf("Starting server on port %s...", cfg.ServerPort)
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
