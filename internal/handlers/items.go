package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"resto_back_end/internal/models"
	"resto_back_end/internal/storage"

	"github.com/gin-gonic/gin"
)

// Clé du seul enregistrement de la collection items.
const menuKey = "items"

// GET /items — la carte du restaurant, sans authentification.
func GetItems(c *gin.Context) {
	var menu models.Menu
	if err := Store.Read(c.Request.Context(), storage.CollectionItems, menuKey, &menu); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lecture de la carte impossible"})
		return
	}

	c.JSON(http.StatusOK, menu)
}

// SeedMenu provisionne la carte par défaut si la collection items est vide.
// Idempotent : un menu déjà présent n'est pas écrasé.
func SeedMenu(ctx context.Context, store storage.Store) error {
	err := store.Create(ctx, storage.CollectionItems, menuKey, models.DefaultMenu)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return nil
	}
	if err == nil {
		log.Println("🍕 Carte par défaut provisionnée")
	}
	return err
}
