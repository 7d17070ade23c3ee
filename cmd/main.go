package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/assetverse/assetverse-backend/config"
	"github.com/assetverse/assetverse-backend/database"
	"github.com/assetverse/assetverse-backend/internal/asset"
	"github.com/assetverse/assetverse-backend/internal/assignment"
	"github.com/assetverse/assetverse-backend/internal/auditlog"
	"github.com/assetverse/assetverse-backend/internal/auth"
	"github.com/assetverse/assetverse-backend/internal/notice"
	"github.com/assetverse/assetverse-backend/internal/notification"
	"github.com/assetverse/assetverse-backend/internal/payment"
	"github.com/assetverse/assetverse-backend/internal/team"
	"github.com/assetverse/assetverse-backend/routes"
	"github.com/assetverse/assetverse-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)
	defer database.Close(db)

	// Init Redis (rate limiter falls back to an in-memory store without it)
	if err := utils.InitRedis(cfg); err != nil {
		log.Printf("⚠️ Redis init failed: %v", err)
		log.Println("ℹ️ Continuing without Redis (rate limiting uses in-memory store, analytics uncached)")
	}

	// Init Kafka producer (no-op when no brokers are configured)
	utils.InitializeKafka(cfg)

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&asset.Asset{},
		&assignment.AssetRequest{},
		&team.Affiliation{},
		&notice.Notice{},
		&notice.ReadStatus{},
		&payment.Package{},
		&payment.Payment{},
		&notification.InAppNotification{},
		&auditlog.AuditLog{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// Seed the subscription package catalog
	paymentRepo := payment.NewRepository(db)
	if err := paymentRepo.SeedPackages(context.Background(), payment.DefaultPackages); err != nil {
		log.Printf("⚠️ Package seeding failed: %v", err)
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:4173", "http://127.0.0.1:4173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With", "Cache-Control", "Pragma"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	notifSvc := routes.Setup(router, db, cfg)

	// Materialize in-app notifications from the event stream
	notification.StartKafkaConsumer(cfg, notifSvc)

	fmt.Printf("🚀 Server starting on port %s\n", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}
