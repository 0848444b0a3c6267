package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/mediavault/mediavault-backend/internal/config"
	"github.com/mediavault/mediavault-backend/internal/database"
	"github.com/mediavault/mediavault-backend/internal/handlers"
	"github.com/mediavault/mediavault-backend/internal/middleware"
	"github.com/mediavault/mediavault-backend/internal/repository"
	"github.com/mediavault/mediavault-backend/internal/routes"
	"github.com/mediavault/mediavault-backend/internal/services"
	"github.com/mediavault/mediavault-backend/internal/storage"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Connect to MongoDB
	log.Printf("Connecting to MongoDB...")
	db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect(db)

	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatal("Failed to ensure MongoDB indexes:", err)
	}
	log.Println("✅ MongoDB indexes ensured")

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	redisClient, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Select the storage backend. Misconfiguration is fatal: the provider
	// decision is made exactly once, at startup.
	backend, err := storage.NewBackend(context.Background(), cfg)
	if err != nil {
		log.Fatal("Failed to initialize storage backend:", err)
	}
	log.Printf("✅ Storage backend initialized (%s)", cfg.StorageProvider)

	// Wire repositories, services and handlers
	userRepo := repository.NewUserRepository(db)
	mediaRepo := repository.NewMediaRepository(db)

	tokenService := services.NewTokenService(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, userRepo, tokenService)
	userService := services.NewUserService(userRepo, tokenService)
	mediaService := services.NewMediaService(mediaRepo, backend)

	authHandler := handlers.NewAuthHandler(userService, authService, tokenService)
	mediaHandler := handlers.NewMediaHandler(mediaService)

	// Setup router
	r := chi.NewRouter()

	// Custom CORS: set headers and respond to OPTIONS with 200 so preflight never gets 403
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: SecurityHeaders → HostCheck → GlobalRateLimit → LoginRateLimit
	// Non-production: Redis-based rate limit only
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP + login rate limiting)")
	} else {
		r.Use(middleware.RateLimit(redisClient))
	}

	// Health check (no rate limit)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, authHandler, mediaHandler)

	log.Printf("🚀 MediaVault backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
