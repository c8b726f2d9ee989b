package storage

import (
	"context"
	"errors"
)

// Collections connues — une par ressource exposée par l'API.
const (
	CollectionUsers  = "users"
	CollectionTokens = "tokens"
	CollectionOrders = "orders"
	CollectionCarts  = "carts"
	CollectionItems  = "items"
)

// Collections liste l'ensemble fermé des collections du store.
var Collections = []string{
	CollectionUsers,
	CollectionTokens,
	CollectionOrders,
	CollectionCarts,
	CollectionItems,
}

var (
	ErrAlreadyExists = errors.New("storage: record already exists")
	ErrNotFound      = errors.New("storage: record not found")
	ErrCorruptRecord = errors.New("storage: record is corrupt")
	ErrInvalidKey    = errors.New("storage: invalid collection or key")
)

// Store est le moteur CRUD partagé par tous les handlers : un enregistrement
// JSON par clé, organisé en collections. Les écritures sont atomiques par
// enregistrement, rien de plus — la composition entre enregistrements est la
// responsabilité de l'appelant.
type Store interface {
	Create(ctx context.Context, collection, key string, value any) error
	Read(ctx context.Context, collection, key string, out any) error
	Update(ctx context.Context, collection, key string, value any) error
	Delete(ctx context.Context, collection, key string) error
	List(ctx context.Context, collection string) ([]string, error)
}

func knownCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}
