package handlers

import (
	"errors"
	"log"
	"net/http"

	"resto_back_end/internal/models"
	"resto_back_end/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /orders — la séquence est stricte et sans compensation :
// validation → token → encaissement → création de la commande → suppression
// du panier → e-mail de confirmation. Le premier échec court-circuite le
// reste ; une commande déjà créée n'est jamais annulée, l'erreur est
// simplement remontée.
func CreateOrder(c *gin.Context) {
	var input struct {
		Email        string            `json:"email" binding:"required,email"`
		Products     []models.CartItem `json:"products" binding:"required,min=1"`
		TotalPayment float64           `json:"total_payment" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "champs requis manquants ou invalides"})
		return
	}
	if !requireToken(c, input.Email) {
		return
	}

	ctx := c.Request.Context()

	if err := Charger.Charge(ctx, input.TotalPayment, input.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paiement de la commande refusé"})
		return
	}

	order := models.Order{
		OrderID:      uuid.NewString(),
		Email:        input.Email,
		Products:     input.Products,
		TotalPayment: input.TotalPayment,
	}
	if err := Store.Create(ctx, storage.CollectionOrders, order.OrderID, order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "création de la commande impossible"})
		return
	}

	if err := Store.Delete(ctx, storage.CollectionCarts, input.Email); err != nil {
		log.Printf("❌ Commande %s créée mais panier de %s non supprimé: %v", order.OrderID, input.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "commande créée mais panier non supprimé"})
		return
	}

	if err := Mailer.SendOrderConfirmation(ctx, order); err != nil {
		log.Printf("❌ Commande %s créée mais e-mail non envoyé: %v", order.OrderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "commande créée mais e-mail de confirmation non envoyé"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// readOwnedOrder relit la commande et vérifie qu'elle appartient bien à
// l'email déjà autorisé par le token ; répond elle-même en cas d'échec.
func readOwnedOrder(c *gin.Context, orderID, email string) (models.Order, bool) {
	var order models.Order
	if err := Store.Read(c.Request.Context(), storage.CollectionOrders, orderID, &order); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return order, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lecture de la commande impossible"})
		return order, false
	}
	if order.Email != email {
		c.JSON(http.StatusForbidden, gin.H{"error": "token manquant ou invalide"})
		return order, false
	}
	return order, true
}

// GET /orders?email=&order_id= — protégé par token.
func GetOrder(c *gin.Context) {
	email, ok := queryEmail(c)
	if !ok {
		return
	}
	orderID := c.Query("order_id")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "champ order_id requis"})
		return
	}
	if !requireToken(c, email) {
		return
	}

	order, ok := readOwnedOrder(c, orderID, email)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, order)
}

// PUT /orders — corrige produits et/ou total d'une commande existante.
func UpdateOrder(c *gin.Context) {
	var input struct {
		Email        string            `json:"email" binding:"required,email"`
		OrderID      string            `json:"order_id" binding:"required"`
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

	order, ok := readOwnedOrder(c, input.OrderID, input.Email)
	if !ok {
		return
	}

	if len(input.Products) > 0 {
		order.Products = input.Products
	}
	if input.TotalPayment > 0 {
		order.TotalPayment = input.TotalPayment
	}

	if err := Store.Update(c.Request.Context(), storage.CollectionOrders, order.OrderID, order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mise à jour de la commande impossible"})
		return
	}

	c.Status(http.StatusOK)
}

// DELETE /orders?email=&order_id=
func DeleteOrder(c *gin.Context) {
	email, ok := queryEmail(c)
	if !ok {
		return
	}
	orderID := c.Query("order_id")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "champ order_id requis"})
		return
	}
	if !requireToken(c, email) {
		return
	}

	if _, ok := readOwnedOrder(c, orderID, email); !ok {
		return
	}

	if err := Store.Delete(c.Request.Context(), storage.CollectionOrders, orderID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "commande introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "suppression de la commande impossible"})
		return
	}

	c.Status(http.StatusOK)
}
