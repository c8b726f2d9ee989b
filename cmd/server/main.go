package main

import (
	"context"
	"log"
	"os"

	"resto_back_end/internal/auth"
	"resto_back_end/internal/config"
	"resto_back_end/internal/handlers"
	"resto_back_end/internal/routes"
	"resto_back_end/internal/services"
	"resto_back_end/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v83"
)

func main() {
	config.Load()

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		log.Fatal("❌ Impossible d'initialiser Stripe : clé manquante")
	}
	log.Println("✅ Stripe initialisé")

	store := openStore()
	handlers.Store = store
	handlers.Tokens = auth.New(store)
	handlers.Charger = &services.StripeCharger{
		Currency: config.Getenv("CHARGE_CURRENCY", "eur"),
	}
	handlers.Mailer = &services.SMTPMailer{
		Host:     config.Getenv("SMTP_HOST", "ssl0.ovh.net"),
		Port:     config.GetenvInt("SMTP_PORT", 587),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     config.Getenv("SMTP_FROM", "noreply@resto.local"),
	}

	if err := handlers.SeedMenu(context.Background(), store); err != nil {
		log.Fatalf("❌ Provisionnement de la carte impossible: %v", err)
	}

	r := gin.Default()
	r.Use(cors.Default())
	routes.RegisterRoutes(r)

	port := config.Getenv("PORT", "8080")
	log.Println("🚀 Serveur resto lancé sur le port", port)
	r.Run(":" + port)
}

// openStore choisit le backend du Record Store : fichiers JSON par défaut,
// Redis si STORAGE_BACKEND=redis.
func openStore() storage.Store {
	if config.Getenv("STORAGE_BACKEND", "file") == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     config.Getenv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		log.Println("✅ Record Store Redis initialisé")
		return storage.NewRedisStore(client)
	}

	store, err := storage.NewFileStore(config.Getenv("DATA_DIR", ".data"))
	if err != nil {
		log.Fatalf("❌ Échec initialisation du Record Store: %v", err)
	}
	log.Println("✅ Record Store fichiers initialisé")
	return store
}
