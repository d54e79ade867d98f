package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apperrors "github.com/shopkart/shopkart-api/common/errors"
	"github.com/shopkart/shopkart-api/common/logger"
	"github.com/shopkart/shopkart-api/config"
	"github.com/shopkart/shopkart-api/controllers"
	"github.com/shopkart/shopkart-api/database"
	"github.com/shopkart/shopkart-api/middleware"
	"github.com/shopkart/shopkart-api/repository"
	"github.com/shopkart/shopkart-api/routes"
	"github.com/shopkart/shopkart-api/services"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Initialize(cfg.Env, cfg.LogDir)
	defer logger.Log.Sync()

	if err := database.Connect(cfg.MongoURL, cfg.MongoDB); err != nil {
		logger.Log.Fatal("Could not connect to MongoDB", zap.Error(err))
	}
	defer database.Close()

	// Repositories and services
	userRepo := repository.NewUserRepository(database.DB)
	productRepo := repository.NewProductRepository(database.DB)
	cartRepo := repository.NewCartRepository(database.DB)
	addressRepo := repository.NewAddressRepository(database.DB)
	paymentRepo := repository.NewPaymentRepository(database.DB)

	tokenService := services.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := services.NewAuthService(userRepo, tokenService)
	cartService := services.NewCartService(cartRepo)
	gateway := services.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	paymentService := services.NewPaymentService(paymentRepo, gateway, cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	// Rate limit store: shared Redis counter when configured, otherwise
	// a per-process limiter map.
	var limitStore middleware.RateLimitStore
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Log.Fatal("Invalid REDIS_URL", zap.Error(err))
		}
		limitStore = middleware.NewRedisStore(redis.NewClient(opts), 100, 15*time.Minute)
		logger.Log.Info("Rate limiting via Redis")
	} else {
		limitStore = middleware.NewMemoryStore(rate.Every(15*time.Minute/100), 20, 30*time.Minute)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RateLimit(limitStore))
	r.Use(apperrors.ErrorMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Register(r, routes.Controllers{
		Auth:    controllers.NewAuthController(authService, userRepo),
		Product: controllers.NewProductController(productRepo),
		Cart:    controllers.NewCartController(cartService),
		Address: controllers.NewAddressController(addressRepo),
		Payment: controllers.NewPaymentController(paymentService),
	}, tokenService)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Log.Info("Server started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Forced shutdown", zap.Error(err))
	}
}
