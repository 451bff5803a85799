package main

import (
	"complaintdesk/backend/internal/api/handler"
	"complaintdesk/backend/internal/attachments"
	"complaintdesk/backend/internal/complaints"
	"complaintdesk/backend/internal/models"
	"complaintdesk/backend/internal/storage"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies() (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis (profile projection cache)
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Migrations
	err = db.AutoMigrate(
		&models.Complaint{},
		&models.Profile{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting ComplaintDesk Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET is not set!")
	}

	// 1. Dependencies
	db, rdb := setupDependencies()
	s := storage.NewStorageService(db, rdb)

	// 2. Object store for photo attachments
	objectStore, err := attachments.NewOSSStore(
		os.Getenv("OSS_ENDPOINT"),
		os.Getenv("OSS_ACCESS_KEY_ID"),
		os.Getenv("OSS_ACCESS_KEY_SECRET"),
		os.Getenv("OSS_BUCKET"),
	)
	if err != nil {
		log.Fatalf("Failed to connect object store: %v", err)
	}

	// 3. Services
	complaintSvc := complaints.NewService(s)
	attachmentSvc := attachments.NewService(objectStore)

	// 4. Gin routing
	r := gin.Default()
	h := handler.NewHandler(complaintSvc, attachmentSvc)

	api := r.Group("/api", handler.AuthRequired())
	{
		api.POST("/complaints", h.CreateComplaint)
		api.GET("/complaints", h.ListOwnComplaints)
		api.GET("/complaints/:id", h.GetComplaint)
		api.PATCH("/complaints/:id", h.UpdateComplaint)
		api.DELETE("/complaints/:id", h.DeleteComplaint)
		api.GET("/admin/complaints", h.ListAllComplaints)
		api.POST("/photos", h.UploadPhotos)
		api.DELETE("/photos", h.RemovePhoto)
	}

	server := &http.Server{
		Addr:           ":8080",
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
