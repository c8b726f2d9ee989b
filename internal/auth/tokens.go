package auth

import (
	"context"
	"errors"
	"time"

	"resto_back_end/internal/models"
	"resto_back_end/internal/storage"
	"resto_back_end/internal/utils"
)

const (
	// TokenIDLength est la longueur fixe des identifiants de token.
	TokenIDLength = 20
	// TokenLifetime : durée de vie d'un token, et durée ajoutée par Extend.
	TokenLifetime = time.Hour
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrExpired            = errors.New("auth: token expired")
)

// Authority gère le cycle de vie des tokens de session au-dessus du Store.
// Cycle : émis → (étendu)* → expiré ou révoqué. Un token expiré ne redevient
// jamais vivant.
type Authority struct {
	store storage.Store
	now   func() time.Time
}

func New(store storage.Store) *Authority {
	return &Authority{store: store, now: time.Now}
}

// Issue vérifie email + mot de passe contre la collection users puis émet un
// token frais d'une heure. Utilisateur inconnu et mot de passe erroné se
// confondent volontairement en ErrInvalidCredentials.
func (a *Authority) Issue(ctx context.Context, email, password string) (*models.Token, error) {
	var user models.User
	if err := a.store.Read(ctx, storage.CollectionUsers, email, &user); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := utils.VerifyPassword(password, user.HashedPassword)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	// L'espace d'identifiants (36^20) rend la collision négligeable, mais on
	// régénère quand même si Create la détecte.
	for attempt := 0; attempt < 3; attempt++ {
		id, err := utils.RandomString(TokenIDLength)
		if err != nil {
			return nil, err
		}
		token := &models.Token{
			ID:      id,
			Email:   email,
			Expires: a.now().Add(TokenLifetime),
		}
		err = a.store.Create(ctx, storage.CollectionTokens, id, token)
		if errors.Is(err, storage.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return token, nil
	}
	return nil, errors.New("auth: collision d'identifiants de token")
}

// Fetch relit un token stocké ; storage.ErrNotFound s'il n'existe pas.
func (a *Authority) Fetch(ctx context.Context, id string) (*models.Token, error) {
	var token models.Token
	if err := a.store.Read(ctx, storage.CollectionTokens, id, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Extend repousse l'expiration d'exactement une heure à partir de maintenant,
// uniquement si le token est encore vivant. ErrExpired sinon.
func (a *Authority) Extend(ctx context.Context, id string) (*models.Token, error) {
	token, err := a.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !token.Expires.After(a.now()) {
		return nil, ErrExpired
	}
	token.Expires = a.now().Add(TokenLifetime)
	if err := a.store.Update(ctx, storage.CollectionTokens, id, token); err != nil {
		return nil, err
	}
	return token, nil
}

// Revoke supprime physiquement le token ; storage.ErrNotFound s'il est absent.
func (a *Authority) Revoke(ctx context.Context, id string) error {
	return a.store.Delete(ctx, storage.CollectionTokens, id)
}

// Verify est un prédicat, pas une opération faillible : vrai ssi le token
// existe, appartient à email et n'a pas expiré. Tout échec de lecture vaut
// "non autorisé", sans raison détaillée pour l'appelant.
func (a *Authority) Verify(ctx context.Context, id, email string) bool {
	if len(id) != TokenIDLength {
		return false
	}
	token, err := a.Fetch(ctx, id)
	if err != nil {
		return false
	}
	return token.Email == email && token.Expires.After(a.now())
}
