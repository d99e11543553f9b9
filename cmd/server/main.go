package main

import (
	"context"
	"log"

	"donation_system/internal/api"        // Custom package for API handlers
	"donation_system/internal/config"     // Custom package for configuration
	"donation_system/internal/ledger"     // Fund-accounting core
	"donation_system/internal/middleware" // Custom package for middleware
	"donation_system/internal/payment"    // Payment gateways

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Fund-accounting core with simulated payment gateways
	svc := ledger.NewService(db, payment.Simulated(), cfg.MinDonation)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default() // Gin router instance

	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/user", api.RegisterHandler(db))            // Registration endpoint
	r.GET("/user", api.LoginHandler(db, cfg.JWTSecret)) // Login endpoint

	// Donor routes (protected by JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	auth.POST("/donations", api.CreateDonationHandler(svc, redisClient))       // Record a donation
	auth.GET("/donations", api.ListMyDonationsHandler(db, redisClient))        // Own donation history
	auth.GET("/funds/summary", api.FundSummaryHandler(svc, redisClient))       // Ledger-wide fund position
	auth.GET("/impact/:account_id", api.ImpactHandler(db, svc, redisClient))   // Donor impact summary
	auth.GET("/beneficiaries", api.ListBeneficiariesHandler(db, redisClient))  // Beneficiary listing

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.POST("/beneficiaries", api.CreateBeneficiaryHandler(db, redisClient))       // Register a beneficiary
	adminGroup.POST("/allocations", api.CreateAllocationHandler(db, svc, redisClient))     // Allocate funds
	adminGroup.POST("/donations/:id/settle", api.SettleDonationHandler(svc, redisClient))  // Settle a pending donation
	adminGroup.GET("/donations", api.ListDonationsHandler(db, redisClient))                // All donations with filters
	adminGroup.GET("/accounts", api.ListAccountsHandler(db, redisClient))                  // Account listing

	log.Println("Server running on " + cfg.AppPort)
	r.Run(":" + cfg.AppPort) // Start the server on port cfg.AppPort
}
