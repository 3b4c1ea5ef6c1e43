package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	resourceControllers "github.com/fit-nest-dev/fit-nest-api/controllers/resource"
	"github.com/fit-nest-dev/fit-nest-api/jobs"
	"github.com/fit-nest-dev/fit-nest-api/mailer"
	"github.com/fit-nest-dev/fit-nest-api/models"
	"github.com/fit-nest-dev/fit-nest-api/payment"
	"github.com/fit-nest-dev/fit-nest-api/realtime"
	"github.com/fit-nest-dev/fit-nest-api/routes"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.OTP{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Trainer{},
		&models.TrainerAssignment{},
		&models.MembershipPlan{},
		&models.Resource{},
		&models.ChangeRequest{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// External services
	gw, err := payment.NewClientFromEnv()
	if err != nil {
		log.Fatalf("❌ Payment gateway config: %v", err)
	}
	mail := mailer.NewFromEnv()
	hub := realtime.NewHub()

	// Gin setup
	r := gin.Default()

	// Allow large resource uploads (100 MB)
	r.MaxMultipartMemory = 100 << 20

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded resources
	uploadsDir := os.Getenv("UPLOAD_DIR")
	if uploadsDir == "" {
		uploadsDir = "/var/www/fit-nest/uploads"
	}
	r.Static("/uploads", uploadsDir)
	if err := os.MkdirAll(resourceControllers.UploadDir(), os.ModePerm); err != nil {
		log.Printf("⚠️ Could not create upload dir: %v", err)
	}

	// Setup routes
	routes.SetupRoutes(r, db, gw, mail, hub)

	// Daily membership expiry sweep
	sweep := jobs.StartMembershipSweep(db, hub)
	defer sweep.Stop()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}
