package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persiste chaque enregistrement dans un fichier JSON :
// <base>/<collection>/<clé>.json. Les écritures passent par un fichier
// temporaire puis un rename (ou un link pour les créations), donc un crash en
// pleine écriture laisse toujours la valeur précédente intacte et un lecteur
// concurrent ne voit jamais d'enregistrement à moitié écrit.
type FileStore struct {
	base string
}

// NewFileStore prépare le répertoire de données et un sous-répertoire par
// collection connue.
func NewFileStore(base string) (*FileStore, error) {
	for _, c := range Collections {
		if err := os.MkdirAll(filepath.Join(base, c), 0o755); err != nil {
			return nil, fmt.Errorf("création du répertoire %s: %w", c, err)
		}
	}
	return &FileStore{base: base}, nil
}

func (s *FileStore) path(collection, key string) (string, error) {
	if !knownCollection(collection) {
		return "", fmt.Errorf("%w: collection %q", ErrInvalidKey, collection)
	}
	if key == "" || strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: clé %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.base, collection, key+".json"), nil
}

// writeTemp écrit la valeur encodée dans un fichier temporaire du même
// répertoire que la destination, pour que le rename reste sur le même système
// de fichiers.
func (s *FileStore) writeTemp(dst string, value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".tmp-*")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// Create échoue avec ErrAlreadyExists si la clé est déjà prise. Le link du
// fichier temporaire vers la destination est atomique : deux créations
// concurrentes sur la même clé ont exactement un gagnant.
func (s *FileStore) Create(ctx context.Context, collection, key string, value any) error {
	dst, err := s.path(collection, key)
	if err != nil {
		return err
	}
	tmp, err := s.writeTemp(dst, value)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)
	if err := os.Link(tmp, dst); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Read décode l'enregistrement dans out. Des octets stockés qui ne se
// décodent pas remontent ErrCorruptRecord, jamais des données partielles.
func (s *FileStore) Read(ctx context.Context, collection, key string, out any) error {
	p, err := s.path(collection, key)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s/%s: %v", ErrCorruptRecord, collection, key, err)
	}
	return nil
}

// Update écrase un enregistrement existant via rename, donc l'ancienne valeur
// reste lisible jusqu'au basculement. Deux updates concurrents sur la même
// clé : le dernier gagne.
func (s *FileStore) Update(ctx context.Context, collection, key string, value any) error {
	dst, err := s.path(collection, key)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dst); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	tmp, err := s.writeTemp(dst, value)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, collection, key string) error {
	p, err := s.path(collection, key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// List énumère les clés présentes dans la collection, sans ordre garanti. Les
// fichiers temporaires en cours d'écriture sont ignorés.
func (s *FileStore) List(ctx context.Context, collection string) ([]string, error) {
	if !knownCollection(collection) {
		return nil, fmt.Errorf("%w: collection %q", ErrInvalidKey, collection)
	}
	entries, err := os.ReadDir(filepath.Join(s.base, collection))
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	return keys, nil
}
