package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"duetchat/backend/internal/api/handler"
	"duetchat/backend/internal/chathub"
	"duetchat/backend/internal/config"
	"duetchat/backend/internal/media"
	"duetchat/backend/internal/models"
	"duetchat/backend/internal/notify"
	"duetchat/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Couple{},
		&models.Message{},
		&models.ThemeTemplate{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting DuetChat Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, rdb := setupDependencies(cfg)
	store := storage.NewService(db, rdb)

	if cfg.FCMServerKey == "" {
		log.Println("Warning: FCM_SERVER_KEY not set, offline pushes will fail")
	}
	dispatcher := notify.NewDispatcher(store, notify.NewFCMClient(cfg.FCMServerKey))
	hub := chathub.NewHub(store, dispatcher)

	files, err := media.NewDiskStore(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		log.Fatalf("Failed to prepare media storage: %v", err)
	}

	r := gin.Default()
	h := handler.NewHandler(hub, store, files, []byte(cfg.JWTSecret))

	r.POST("/auth/login", h.Login)
	r.GET("/ws", h.ServeWebSocket)
	r.Static(cfg.MediaBaseURL, cfg.MediaDir)

	authed := r.Group("/", h.AuthRequired())
	{
		authed.POST("/couples/generate", h.GeneratePairCode)
		authed.POST("/couples/join", h.JoinCouple)
		authed.GET("/couples/status", h.CoupleStatus)
		authed.GET("/couples/themes/templates", h.ListThemeTemplates)
		authed.POST("/couples/:id/theme", h.UpdateCoupleTheme)

		authed.POST("/messages/upload", h.UploadMessage)
		authed.GET("/messages/:coupleId", h.ChatHistory)
		authed.GET("/messages/:coupleId/media", h.MediaHistory)
		authed.GET("/messages/:coupleId/partner/:userId", h.Partner)

		authed.POST("/users/fcm-token", h.UpdateFcmToken)
		authed.POST("/users/:userId/profile-pic", h.UploadProfilePic)
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	log.Printf("Listening on %s", cfg.Addr)
	log.Fatal(server.ListenAndServe())
}
