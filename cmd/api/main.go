package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/dentlab-api/internal/config"
	"github.com/harentsoaR/dentlab-api/internal/handlers"
	"github.com/harentsoaR/dentlab-api/internal/middleware"
	"github.com/harentsoaR/dentlab-api/internal/services"
	"github.com/harentsoaR/dentlab-api/internal/store"
	"github.com/harentsoaR/dentlab-api/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	config.LogConfig(cfg)

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to reach MongoDB: %v", err)
	}

	st := store.NewMongoStore(client.Database(cfg.MongoDatabase))
	if err := st.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	log.Println("Successfully connected to MongoDB!")

	// --- Services and handlers ---
	notificationSvc := services.NewNotificationService(cfg.TextbeltAPIKey, cfg.TextbeltURL)
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	h := handlers.NewHandler(st, tokens, notificationSvc)

	// --- Gin Router ---
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	h.RegisterRoutes(r)

	log.Printf("Starting server on port %s", cfg.APIPort)
	if err := r.Run(":" + cfg.APIPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
