package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"fulfillment-backend/internal/auth"
	"fulfillment-backend/internal/cache"
	"fulfillment-backend/internal/config"
	"fulfillment-backend/internal/database"
	"fulfillment-backend/internal/db"
	"fulfillment-backend/internal/handlers"
	"fulfillment-backend/internal/health"
	h "fulfillment-backend/internal/http"
	"fulfillment-backend/internal/middleware"
	"fulfillment-backend/internal/repositories"
	"fulfillment-backend/internal/services"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (listings will hit the database)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations on startup
	migrator := database.NewMigrator(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	unitRepo := repositories.NewUnitRepository(pool)
	containerRepo := repositories.NewContainerRepository(pool)
	creditRepo := repositories.NewCreditRequestRepository(pool)

	// Initialize services
	userService := services.NewUserService(userRepo, jwtManager)
	fulfillmentService := services.NewFulfillmentService(unitRepo)
	containerService := services.NewContainerService(containerRepo)
	creditService := services.NewCreditService(creditRepo)
	mailerService := services.NewMailerService(cfg.Mail.GatewayURL, cfg.Mail.LabelInbox)
	labelService := services.NewLabelService(unitRepo, mailerService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	unitHandler := handlers.NewUnitHandler(fulfillmentService)
	containerHandler := handlers.NewContainerHandler(containerService)
	creditHandler := handlers.NewCreditHandler(creditService)
	labelHandler := handlers.NewLabelHandler(labelService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Build router and wrap with panic recovery, metrics and CORS middleware
	router := h.NewRouter(authHandler, userHandler, unitHandler, containerHandler, creditHandler, labelHandler, healthHandler, authMiddleware)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
