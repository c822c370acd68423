// Seeds the stock theme templates. Safe to run repeatedly: existing templates
// are updated in place by name.
package main

import (
	"log"

	"duetchat/backend/internal/config"
	"duetchat/backend/internal/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var templates = []models.ThemeTemplate{
	{
		Name:                "Classic Rose",
		BackgroundType:      "COLOR",
		BackgroundColor:     "#FDF2F4",
		SenderBubbleColor:   "#E11D48",
		ReceiverBubbleColor: "#FFFFFF",
		SenderTextColor:     "#FFFFFF",
		ReceiverTextColor:   "#1A1A2E",
		AccentColor:         "#E11D48",
	},
	{
		Name:                "Sunset Glow",
		BackgroundType:      "GRADIENT",
		GradientStartColor:  "#FF512F",
		GradientEndColor:    "#F09819",
		GradientAngle:       45,
		SenderBubbleColor:   "#A16207",
		ReceiverBubbleColor: "#FFFFFFEE",
		SenderTextColor:     "#FFFFFF",
		ReceiverTextColor:   "#1A1A2E",
		AccentColor:         "#FF512F",
	},
	{
		Name:                "Starlit Night",
		BackgroundType:      "IMAGE",
		BackgroundImageURL:  "https://images.unsplash.com/photo-1534796636912-3b95b3ab5986?q=80&w=2071&auto=format&fit=crop",
		SenderBubbleColor:   "#0369A1",
		ReceiverBubbleColor: "#1E293BEE",
		SenderTextColor:     "#FFFFFF",
		ReceiverTextColor:   "#F1F5F9",
		AccentColor:         "#38BDF8",
	},
	{
		Name:                "Lavender Mist",
		BackgroundType:      "COLOR",
		BackgroundColor:     "#F5F3FF",
		SenderBubbleColor:   "#7E22CE",
		ReceiverBubbleColor: "#FFFFFF",
		SenderTextColor:     "#FFFFFF",
		ReceiverTextColor:   "#1E1B4B",
		AccentColor:         "#7E22CE",
	},
	{
		Name:                "Forest Dream",
		BackgroundType:      "GRADIENT",
		GradientStartColor:  "#1D976C",
		GradientEndColor:    "#93F9B9",
		GradientAngle:       135,
		SenderBubbleColor:   "#064E3B",
		ReceiverBubbleColor: "#FFFFFFEE",
		SenderTextColor:     "#FFFFFF",
		ReceiverTextColor:   "#064E3B",
		AccentColor:         "#1D976C",
	},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.ThemeTemplate{}); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	log.Println("Seeding theme templates...")
	for _, t := range templates {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			UpdateAll: true,
		}).Create(&t).Error
		if err != nil {
			log.Fatalf("failed to seed template %q: %v", t.Name, err)
		}
	}
	log.Println("Seeding completed!")
}
