// Package assets abstracts where plan images live. The service layer only
// knows Save and Delete; swapping local disk for object storage is a
// constructor change.
package assets

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type AssetStore interface {
	// Save persists the bytes and returns the public URL of the asset.
	Save(filename string, data []byte) (string, error)
	// Delete removes an asset by its URL. Missing assets are not an error.
	Delete(url string) error
}

type localAssetStore struct {
	dir     string
	baseURL string
}

func NewLocalAssetStore(dir, baseURL string) (AssetStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset dir: %w", err)
	}
	return &localAssetStore{dir: dir, baseURL: baseURL}, nil
}

func (s *localAssetStore) Save(filename string, data []byte) (string, error) {
	name := uuid.NewString() + filepath.Ext(filename)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write asset: %w", err)
	}
	return s.baseURL + "/assets/" + name, nil
}

func (s *localAssetStore) Delete(url string) error {
	name := filepath.Base(url)
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove asset: %w", err)
	}
	return nil
}
