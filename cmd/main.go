package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"lacongolaise/review-service/internal/config"
	"lacongolaise/review-service/internal/handler"
	"lacongolaise/review-service/internal/repository"
	"lacongolaise/review-service/internal/services"
	"lacongolaise/review-service/internal/utils"
	"lacongolaise/review-service/internal/utils/mongodb"
)

func main() {
	ctx, shutdownManager := utils.NewShutdownManager(context.Background())
	shutdownManager.StartListening()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Error parsing configs: %v", err)
	}

	mongoClient, err := mongodb.NewMongoDBConnection(cfg.MongoDB)
	if err != nil {
		log.Fatalf("Error connecting to MongoDB: %v", err)
	}
	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing MongoDB connection...")
		return mongoClient.Disconnect(ctx)
	})
	db := mongoClient.Database(cfg.MongoDB.DBName)

	var rdb *redis.Client
	if cfg.Cache.RedisURL != "" {
		rdb, err = utils.NewRedisClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			log.Fatalf("Error connecting to Redis: %v", err)
		}
		shutdownManager.Register(func(ctx context.Context) error {
			log.Println("[SHUTDOWN] Closing Redis connection...")
			return rdb.Close()
		})
		log.Printf("[CACHE] Review stats cached for %s", cfg.Cache.StatsTTL)
	}

	reviewRepo := repository.NewReviewRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	reviewService := services.NewReviewService(reviewRepo, rdb, cfg.Cache.StatsTTL)
	statusService := services.NewStatusService(statusRepo)
	reviewHandler := handler.NewReviewHandler(reviewService)
	statusHandler := handler.NewStatusHandler(statusService)

	router := gin.Default()
	router.Use(utils.NewCORS(cfg.Server.CORSOrigins))
	router.Use(utils.PrometheusMiddleware())

	handler.RegisterRoutes(router.Group("/api"), reviewHandler, statusHandler)
	router.GET("/metrics", utils.MetricsHandler())

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server started on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Shutting down HTTP server...")
		return server.Shutdown(ctx)
	})

	<-shutdownManager.Done()
}
