package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"github.com/shopworks/storefront/internal/config"
	"github.com/shopworks/storefront/internal/database"
	"github.com/shopworks/storefront/internal/handler"
	"github.com/shopworks/storefront/internal/payment"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database setup failed: %v", err)
	}
	if err := database.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("Admin seed failed: %v", err)
	}

	var collector payment.Collector = payment.Disabled{}
	if cfg.MPAccessToken != "" {
		mp, err := payment.NewMercadoPago(cfg.MPAccessToken)
		if err != nil {
			log.Fatalf("Payment setup failed: %v", err)
		}
		collector = mp
	} else {
		log.Println("No payment gateway configured, orders will use the placeholder payment id")
	}

	app := &handler.App{
		DB:       db,
		Store:    sessions.NewCookieStore([]byte(cfg.SessionSecret)),
		Cfg:      cfg,
		Payments: collector,
	}

	router := gin.Default()
	router.LoadHTMLGlob("internal/view/templates/*.html")
	app.RegisterRoutes(router)

	log.Printf("Server running on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
