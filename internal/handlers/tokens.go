package handlers

import (
	"errors"
	"net/http"

	"resto_back_end/internal/auth"
	"resto_back_end/internal/storage"

	"github.com/gin-gonic/gin"
)

// queryTokenID valide le paramètre id (longueur fixe) ; répond 400 elle-même.
func queryTokenID(c *gin.Context) (string, bool) {
	id := c.Query("id")
	if len(id) != auth.TokenIDLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "champ id requis ou invalide"})
		return "", false
	}
	return id, true
}

// POST /tokens — login : vérifie les identifiants et émet un token d'une heure.
func CreateToken(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "champs requis manquants ou invalides"})
		return
	}

	token, err := Tokens.Issue(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "identifiants invalides"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "création du token impossible"})
		return
	}

	c.JSON(http.StatusOK, token)
}

// GET /tokens?id=
func GetToken(c *gin.Context) {
	id, ok := queryTokenID(c)
	if !ok {
		return
	}

	token, err := Tokens.Fetch(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lecture du token impossible"})
		return
	}

	c.JSON(http.StatusOK, token)
}

// PUT /tokens — {id, extend: true} : prolonge le token d'une heure, seulement
// s'il n'a pas encore expiré.
func ExtendToken(c *gin.Context) {
	var input struct {
		ID     string `json:"id" binding:"required"`
		Extend bool   `json:"extend"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || len(input.ID) != auth.TokenIDLength || !input.Extend {
		c.JSON(http.StatusBadRequest, gin.H{"error": "champs requis manquants ou invalides"})
		return
	}

	if _, err := Tokens.Extend(c.Request.Context(), input.ID); err != nil {
		switch {
		case errors.Is(err, auth.ErrExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "token expiré, extension impossible"})
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "token introuvable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "mise à jour du token impossible"})
		}
		return
	}

	c.Status(http.StatusOK)
}

// DELETE /tokens?id= — logout : révocation par suppression physique.
func DeleteToken(c *gin.Context) {
	id, ok := queryTokenID(c)
	if !ok {
		return
	}

	if err := Tokens.Revoke(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "suppression du token impossible"})
		return
	}

	c.Status(http.StatusOK)
}
