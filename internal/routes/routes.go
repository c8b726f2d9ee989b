package routes

import (
	"net/http"

	"resto_back_end/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes câble les cinq ressources. Méthode non supportée sur une
// route connue : 405 ; ressource inconnue : 404 du routeur.
func RegisterRoutes(r *gin.Engine) {
	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.NoMethod(func(c *gin.Context) { c.Status(http.StatusMethodNotAllowed) })

	// Users
	r.POST("/users", handlers.CreateUser)
	r.GET("/users", handlers.GetUser)
	r.PUT("/users", handlers.UpdateUser)
	r.DELETE("/users", handlers.DeleteUser)

	// Tokens
	r.POST("/tokens", handlers.CreateToken)
	r.GET("/tokens", handlers.GetToken)
	r.PUT("/tokens", handlers.ExtendToken)
	r.DELETE("/tokens", handlers.DeleteToken)

	// Carts
	r.POST("/carts", handlers.CreateCart)
	r.GET("/carts", handlers.GetCart)
	r.PUT("/carts", handlers.UpdateCart)
	r.DELETE("/carts", handlers.DeleteCart)

	// Orders
	r.POST("/orders", handlers.CreateOrder)
	r.GET("/orders", handlers.GetOrder)
	r.PUT("/orders", handlers.UpdateOrder)
	r.DELETE("/orders", handlers.DeleteOrder)

	// Items — lecture seule
	r.GET("/items", handlers.GetItems)
}
