package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisStore implémente la même interface Store au-dessus de Redis, pour les
// déploiements où le disque local ne suffit pas. Clé Redis :
// "<collection>:<clé>", valeur JSON, pas d'expiration.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(collection, key string) (string, error) {
	if !knownCollection(collection) {
		return "", fmt.Errorf("%w: collection %q", ErrInvalidKey, collection)
	}
	if key == "" || strings.Contains(key, ":") {
		return "", fmt.Errorf("%w: clé %q", ErrInvalidKey, key)
	}
	return collection + ":" + key, nil
}

// Create s'appuie sur SetNX : un seul gagnant en cas de créations concurrentes.
func (s *RedisStore) Create(ctx context.Context, collection, key string, value any) error {
	k, err := s.key(collection, key)
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	ok, err := s.client.SetNX(ctx, k, data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyExists
	}
	return nil
}

func (s *RedisStore) Read(ctx context.Context, collection, key string, out any) error {
	k, err := s.key(collection, key)
	if err != nil {
		return err
	}
	data, err := s.client.Get(ctx, k).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s/%s: %v", ErrCorruptRecord, collection, key, err)
	}
	return nil
}

func (s *RedisStore) Update(ctx context.Context, collection, key string, value any) error {
	k, err := s.key(collection, key)
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	// SET XX : n'écrit que si la clé existe déjà.
	ok, err := s.client.SetXX(ctx, k, data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, collection, key string) error {
	k, err := s.key(collection, key)
	if err != nil {
		return err
	}
	n, err := s.client.Del(ctx, k).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, collection string) ([]string, error) {
	if !knownCollection(collection) {
		return nil, fmt.Errorf("%w: collection %q", ErrInvalidKey, collection)
	}
	prefix := collection + ":"
	var keys []string
	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
