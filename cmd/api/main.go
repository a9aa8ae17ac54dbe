package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/climatecoach/carbon-engine/internal/adapters/cache"
	adapterHTTP "github.com/climatecoach/carbon-engine/internal/adapters/handler/http"
	"github.com/climatecoach/carbon-engine/internal/adapters/repository"
	"github.com/climatecoach/carbon-engine/internal/core/domain"
	"github.com/climatecoach/carbon-engine/internal/core/engine"
	"github.com/climatecoach/carbon-engine/internal/core/services"
	"github.com/climatecoach/carbon-engine/internal/core/workers"
)

func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	serverPort := os.Getenv("PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET is required")
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	// Redis is optional: without it the summary cache falls back to memory
	// and the rate limiter is disabled.
	redisClient, err := connectRedis()
	if err != nil {
		log.Printf("Redis unavailable (%v), continuing without it.", err)
		redisClient = nil
	}

	var activityRepo domain.ActivityRepository = repository.NewPostgresActivityRepository(db)
	footprintRepo := repository.NewPostgresFootprintRepository(db)
	userRepo := repository.NewPostgresUserRepository(db.DB)

	var summaryCache domain.SummaryCache
	if redisClient != nil {
		activityRepo = repository.NewCachedActivityRepository(activityRepo, redisClient)
		summaryCache = cache.NewRedisSummaryCache(redisClient)
	} else {
		summaryCache = cache.NewMemorySummaryCache()
	}

	calculator := engine.NewCalculator(engine.DefaultFactorTable())
	analyzer := engine.NewAnalyzer()
	recommender := engine.NewRecommender(engine.DefaultCatalog())

	summaryWorker := workers.NewSummaryWorker(footprintRepo, summaryCache, analyzer)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	summaryWorker.Start(workerCtx)

	activityService := services.NewActivityService(activityRepo, footprintRepo, calculator, summaryWorker)
	insightService := services.NewInsightService(activityRepo, footprintRepo, userRepo, analyzer, recommender, summaryCache)
	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(jwtSecret, "carbon-engine", 24*time.Hour, userRepo)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(authService, tokenService),
		ActivityHandler: adapterHTTP.NewActivityHandler(activityService),
		InsightHandler:  adapterHTTP.NewInsightHandler(insightService),
		TokenService:    tokenService,
		DB:              db,
		Redis:           redisClient,
		StartTime:       startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Carbon Engine running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}

func connectRedis() (*redis.Client, error) {
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		return nil, fmt.Errorf("REDIS_HOST not set")
	}

	redisPort := os.Getenv("REDIS_PORT")
	if redisPort == "" {
		redisPort = "6379"
	}

	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsed, parseErr := strconv.Atoi(dbStr); parseErr == nil {
			redisDB = parsed
		}
	}

	return cache.NewRedisClient(redisHost, redisPort, os.Getenv("REDIS_PASSWORD"), redisDB)
}
