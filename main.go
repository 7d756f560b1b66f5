package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"rental-backend/cache"
	"rental-backend/config"
	"rental-backend/consumers"
	"rental-backend/controllers"
	"rental-backend/repositories"
	"rental-backend/routes"
	"rental-backend/scheduler"
	"rental-backend/services"
)

func buildCache(cfg config.CacheConfig) cache.RoomCache {
	if !cfg.Enabled {
		log.Println("⚠️ Cache disabled")
		return cache.Noop{}
	}

	local := cache.NewLocal(cfg.MaxSize, cfg.CacheTTL())
	if cfg.MemcachedHost == "" {
		log.Println("✅ Local cache ready")
		return local
	}

	log.Printf("✅ Layered cache ready (memcached at %s)", cfg.MemcachedHost)
	return cache.NewLayered(local, cfg.MemcachedHost, cfg.CacheTTL())
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	log.Println("✅ Database connected")

	roomCache := buildCache(cfg.Cache)

	var events services.EventPublisher
	var consumer *consumers.InvalidationConsumer
	if cfg.Broker.URL != "" {
		publisher, err := consumers.NewPublisher(cfg.Broker.URL, cfg.Broker.Queue)
		if err != nil {
			log.Printf("⚠️ Broker unavailable, running without fan-out: %v", err)
		} else {
			events = publisher
			defer publisher.Close()

			consumer, err = consumers.NewInvalidationConsumer(cfg.Broker.URL, cfg.Broker.Queue, roomCache)
			if err != nil {
				log.Printf("⚠️ Failed to start invalidation consumer: %v", err)
			} else {
				go func() {
					if err := consumer.Start(); err != nil {
						log.Printf("⚠️ Invalidation consumer stopped: %v", err)
					}
				}()
				defer consumer.Close()
				log.Println("✅ Invalidation consumer running")
			}
		}
	}

	roomRepo := repositories.NewRoomRepository(config.DB)
	proposalRepo := repositories.NewProposalRepository(config.DB)
	profileRepo := repositories.NewProfileRepository(config.DB)

	searchService := services.NewSearchService(roomRepo, roomCache)
	roomService := services.NewRoomService(roomRepo, roomCache)
	proposalService := services.NewProposalService(roomRepo, proposalRepo, profileRepo, roomCache, events)
	profileService := services.NewProfileService(profileRepo)
	catalogService := services.NewCatalogService(config.DB, roomCache, events)

	searchController := controllers.NewSearchController(searchService)
	roomController := controllers.NewRoomController(roomService)
	proposalController := controllers.NewProposalController(proposalService)
	userController := controllers.NewUserController(profileService)
	catalogController := controllers.NewCatalogController(catalogService)

	if cfg.Sweep.Enabled {
		sweeper := scheduler.NewSweeper(proposalService, cfg.Sweep.RunAt)
		if err := sweeper.Start(); err != nil {
			log.Printf("⚠️ Failed to start expiration sweep: %v", err)
		} else {
			defer sweeper.Stop()
			log.Printf("✅ Expiration sweep scheduled at %s", cfg.Sweep.RunAt)
		}
	}

	router := routes.SetupRouter(
		searchController,
		roomController,
		proposalController,
		userController,
		catalogController,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server running on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Forced shutdown: %v", err)
	}
	log.Println("Server exited")
}
