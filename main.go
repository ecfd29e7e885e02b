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

	"hospital-backend/config"
	"hospital-backend/controllers"
	"hospital-backend/routes"
	"hospital-backend/services"
)

func envOrDefault(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	log.Println("✅ Database connection established and migrations applied")

	// Optional redis-backed cache of the reconciliation payload
	cache := services.NewConnectionsCache(config.ConnectRedis())

	// Initialize services
	connectionService := services.NewConnectionService(db, cache)
	roomMappingService := services.NewRoomMappingService(db, cache)
	turarService := services.NewTurarService(db, cache)
	floorService := services.NewFloorService(db, cache)
	exportService := services.NewExportService(floorService, turarService, connectionService)
	importLogService := services.NewImportLogService(db)

	// Bootstrap the Travmpunkt fixture; a failure here is not fatal,
	// the same routine is reachable via POST /api/turar/create-travmpunkt.
	if _, stats, err := turarService.CreateTravmpunkt(context.Background()); err != nil {
		log.Printf("⚠️  Travmpunkt bootstrap failed: %v", err)
	} else {
		log.Printf("✅ Travmpunkt ready: %d rooms, %d equipment items", stats.Rooms, stats.Equipment)
	}

	// Initialize controllers
	connectionController := controllers.NewConnectionController(
		connectionService,
		roomMappingService,
		envOrDefault("MAPPINGS_DATA_FILE", "data/proektturar_dedup.json"),
	)
	floorController := controllers.NewFloorController(floorService, envOrDefault("FLOORS_DATA_DIR", "data"))
	turarController := controllers.NewTurarController(turarService, envOrDefault("TURAR_DATA_FILE", "data/turar.json"))
	exportController := controllers.NewExportController(exportService)
	importController := controllers.NewImportController(importLogService)

	// Build router
	router := routes.SetupRouter(connectionController, floorController, turarController, exportController, importController)

	addr := ":" + envOrDefault("PORT", "8080")

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
