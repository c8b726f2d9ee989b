package handlers

import (
	"net/http"
	"regexp"

	"resto_back_end/internal/auth"
	"resto_back_end/internal/services"
	"resto_back_end/internal/storage"

	"github.com/gin-gonic/gin"
)

// Dépendances partagées par tous les handlers, câblées au démarrage (et par
// les tests).
var (
	Store   storage.Store
	Tokens  *auth.Authority
	Charger services.Charger
	Mailer  services.Mailer
)

var emailRe = regexp.MustCompile(`\S+@\S+\.\S+`)

func validEmail(s string) bool {
	return emailRe.MatchString(s)
}

// requireToken lit le header `token` et vérifie qu'il autorise l'accès aux
// ressources de email. Absence, malformation ou expiration : même réponse 403,
// sans détail.
func requireToken(c *gin.Context, email string) bool {
	token := c.GetHeader("token")
	if !Tokens.Verify(c.Request.Context(), token, email) {
		c.JSON(http.StatusForbidden, gin.H{"error": "token manquant ou invalide"})
		return false
	}
	return true
}

// queryEmail valide le paramètre de requête email ; répond 400 elle-même en
// cas d'absence ou de format invalide.
func queryEmail(c *gin.Context) (string, bool) {
	email := c.Query("email")
	if !validEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "champ email requis ou invalide"})
		return "", false
	}
	return email, true
}
