package handlers

import (
	"errors"
	"net/http"

	"resto_back_end/internal/models"
	"resto_back_end/internal/storage"
	"resto_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// POST /users — inscription, pas de token requis.
func CreateUser(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Address  string `json:"address" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "champs requis manquants ou invalides"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "hachage du mot de passe impossible"})
		return
	}

	user := models.User{
		Name:           input.Name,
		Email:          input.Email,
		Address:        input.Address,
		HashedPassword: hashed,
	}
	if err := Store.Create(c.Request.Context(), storage.CollectionUsers, user.Email, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "un utilisateur avec cet email existe déjà"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "création de l'utilisateur impossible"})
		return
	}

	c.Status(http.StatusOK)
}

// GET /users?email= — protégé par token.
func GetUser(c *gin.Context) {
	email, ok := queryEmail(c)
	if !ok {
		return
	}
	if !requireToken(c, email) {
		return
	}

	var user models.User
	if err := Store.Read(c.Request.Context(), storage.CollectionUsers, email, &user); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lecture de l'utilisateur impossible"})
		return
	}

	// Le digest ne sort jamais de l'API.
	user.HashedPassword = ""
	c.JSON(http.StatusOK, user)
}

// PUT /users — met à jour name/address/password ; au moins un des trois.
func UpdateUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name"`
		Address  string `json:"address"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "champs requis manquants ou invalides"})
		return
	}
	if input.Name == "" && input.Address == "" && input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun champ à mettre à jour"})
		return
	}
	if !requireToken(c, input.Email) {
		return
	}

	var user models.User
	if err := Store.Read(c.Request.Context(), storage.CollectionUsers, input.Email, &user); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "utilisateur introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lecture de l'utilisateur impossible"})
		return
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Address != "" {
		user.Address = input.Address
	}
	if input.Password != "" {
		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "hachage du mot de passe impossible"})
			return
		}
		user.HashedPassword = hashed
	}

	if err := Store.Update(c.Request.Context(), storage.CollectionUsers, input.Email, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mise à jour de l'utilisateur impossible"})
		return
	}

	c.Status(http.StatusOK)
}

// DELETE /users?email= — supprime le compte. Les paniers, commandes et tokens
// de l'utilisateur ne sont pas supprimés en cascade.
func DeleteUser(c *gin.Context) {
	email, ok := queryEmail(c)
	if !ok {
		return
	}
	if !requireToken(c, email) {
		return
	}

	if err := Store.Delete(c.Request.Context(), storage.CollectionUsers, email); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "utilisateur introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "suppression de l'utilisateur impossible"})
		return
	}

	c.Status(http.StatusOK)
}
