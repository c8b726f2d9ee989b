package auth

import (
	"context"
	"testing"
	"time"

	"resto_back_end/internal/models"
	"resto_back_end/internal/storage"
	"resto_back_end/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "alice@x.com"
	testPassword = "secret"
)

// newTestAuthority monte une Authority sur un store temporaire avec un
// utilisateur enregistré et une horloge contrôlable.
func newTestAuthority(t *testing.T) (*Authority, *time.Time) {
	t.Helper()

	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	hashed, err := utils.HashPassword(testPassword)
	require.NoError(t, err)
	user := models.User{Name: "Alice", Email: testEmail, Address: "1 rue du Four", HashedPassword: hashed}
	require.NoError(t, store.Create(context.Background(), storage.CollectionUsers, testEmail, user))

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	a := New(store)
	a.now = func() time.Time { return now }
	return a, &now
}

func TestIssueAndVerify(t *testing.T) {
	a, _ := newTestAuthority(t)
	ctx := context.Background()

	token, err := a.Issue(ctx, testEmail, testPassword)
	require.NoError(t, err)
	assert.Len(t, token.ID, TokenIDLength)
	assert.Equal(t, testEmail, token.Email)

	assert.True(t, a.Verify(ctx, token.ID, testEmail))
	assert.False(t, a.Verify(ctx, token.ID, "bob@x.com"), "mauvais propriétaire")
	assert.False(t, a.Verify(ctx, "inconnu-aaaaaaaaaaaa", testEmail), "token inexistant")
	assert.False(t, a.Verify(ctx, "", testEmail), "token absent")
}

func TestIssueInvalidCredentials(t *testing.T) {
	a, _ := newTestAuthority(t)
	ctx := context.Background()

	_, err := a.Issue(ctx, testEmail, "mauvais-mot-de-passe")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Issue(ctx, "inconnu@x.com", testPassword)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIssueExpiry(t *testing.T) {
	a, now := newTestAuthority(t)
	ctx := context.Background()

	token, err := a.Issue(ctx, testEmail, testPassword)
	require.NoError(t, err)
	assert.Equal(t, now.Add(TokenLifetime), token.Expires)

	// L'expiration est dérivée de l'horloge, pas d'un drapeau stocké.
	*now = now.Add(TokenLifetime + time.Second)
	assert.False(t, a.Verify(ctx, token.ID, testEmail))
}

func TestExtend(t *testing.T) {
	a, now := newTestAuthority(t)
	ctx := context.Background()

	token, err := a.Issue(ctx, testEmail, testPassword)
	require.NoError(t, err)

	// Extension 30 minutes plus tard : l'expiration repart d'exactement une
	// heure à compter du moment de l'extension.
	*now = now.Add(30 * time.Minute)
	extended, err := a.Extend(ctx, token.ID)
	require.NoError(t, err)
	assert.Equal(t, now.Add(TokenLifetime), extended.Expires)

	stored, err := a.Fetch(ctx, token.ID)
	require.NoError(t, err)
	assert.True(t, stored.Expires.Equal(extended.Expires))
}

func TestExtendAfterExpiry(t *testing.T) {
	a, now := newTestAuthority(t)
	ctx := context.Background()

	token, err := a.Issue(ctx, testEmail, testPassword)
	require.NoError(t, err)

	*now = now.Add(2 * TokenLifetime)
	_, err = a.Extend(ctx, token.ID)
	require.ErrorIs(t, err, ErrExpired)

	// Pas de retour en vie possible : Verify reste faux.
	assert.False(t, a.Verify(ctx, token.ID, testEmail))
}

func TestExtendMissing(t *testing.T) {
	a, _ := newTestAuthority(t)

	_, err := a.Extend(context.Background(), "aaaaaaaaaaaaaaaaaaaa")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRevoke(t *testing.T) {
	a, _ := newTestAuthority(t)
	ctx := context.Background()

	token, err := a.Issue(ctx, testEmail, testPassword)
	require.NoError(t, err)

	require.NoError(t, a.Revoke(ctx, token.ID))
	assert.False(t, a.Verify(ctx, token.ID, testEmail))

	_, err = a.Fetch(ctx, token.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.ErrorIs(t, a.Revoke(ctx, token.ID), storage.ErrNotFound)
}
