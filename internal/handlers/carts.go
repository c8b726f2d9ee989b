package handlers

import (
	"errors"
	"net/http"

	"resto_back_end/internal/models"
	"resto_back_end/internal/storage"

	"github.com/gin-gonic/gin"
)

// POST /carts — ouvre le panier de l'utilisateur. Au plus un panier par email :
// un panier déjà présent est un conflit, pas un écrasement.
func CreateCart(c *gin.Context) {
	var input struct {
		Email        string            `json:"email" binding:"required,email"`
		Products     []models.CartItem `json:"products" binding:"required,min=1"`
		TotalPayment float64           `json:"total_payment" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "champs requis manquants ou invalides"})
		return
	}

	var existing models.Cart
	err := Store.Read(c.Request.Context(), storage.CollectionCarts, input.Email, &existing)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "un panier existe déjà pour cet email"})
		return
	}
	if !errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lecture du panier impossible"})
		return
	}

	cart := models.Cart{
		Email:        input.Email,
		Products:     input.Products,
		TotalPayment: input.TotalPayment,
	}
	if err := Store.Create(c.Request.Context(), storage.CollectionCarts, cart.Email, cart); err != nil {
		// Deux POST concurrents : Create tranche, le perdant voit le conflit.
		if errors.Is(err, storage.ErrAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "un panier existe déjà pour cet email"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "création du panier impossible"})
		return
	}

	c.Status(http.StatusOK)
}

// GET /carts?email= — protégé par token.
func GetCart(c *gin.Context) {
	email, ok := queryEmail(c)
	if !ok {
		return
	}
	if !requireToken(c, email) {
		return
	}

	var cart models.Cart
	if err := Store.Read(c.Request.Context(), storage.CollectionCarts, email, &cart); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lecture du panier impossible"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

// PUT /carts — remplace produits et/ou total du panier existant.
func UpdateCart(c *gin.Context) {
	var input struct {
		Email        string            `json:"email" binding:"required,email"`
		Products     []models.CartItem `json:"products"`
		TotalPayment float64           `json:"total_payment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "champs requis manquants ou invalides"})
		return
	}
	if len(input.Products) == 0 && input.TotalPayment <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun champ à mettre à jour"})
		return
	}
	if !requireToken(c, input.Email) {
		return
	}

	var cart models.Cart
	if err := Store.Read(c.Request.Context(), storage.CollectionCarts, input.Email, &cart); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "panier introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lecture du panier impossible"})
		return
	}

	if len(input.Products) > 0 {
		cart.Products = input.Products
	}
	if input.TotalPayment > 0 {
		cart.TotalPayment = input.TotalPayment
	}

	if err := Store.Update(c.Request.Context(), storage.CollectionCarts, input.Email, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mise à jour du panier impossible"})
		return
	}

	c.Status(http.StatusOK)
}

// DELETE /carts?email= — abandonne le panier.
func DeleteCart(c *gin.Context) {
	email, ok := queryEmail(c)
	if !ok {
		return
	}
	if !requireToken(c, email) {
		return
	}

	if err := Store.Delete(c.Request.Context(), storage.CollectionCarts, email); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "panier introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "suppression du panier impossible"})
		return
	}

	c.Status(http.StatusOK)
}
