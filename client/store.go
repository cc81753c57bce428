package client

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tokenFileName is the fixed key the session token is persisted under.
const tokenFileName = "token"

// TokenStore is the client-local durable storage slot for the session token.
// Load returns ("", nil) when no token is stored.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileStore persists the token as a single file named "token" inside Dir.
type FileStore struct {
	Dir string
}

// DefaultFileStore stores the token under the user's config directory.
func DefaultFileStore() (*FileStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}
	return &FileStore{Dir: filepath.Join(dir, "authbox")}, nil
}

func (s *FileStore) path() string {
	return filepath.Join(s.Dir, tokenFileName)
}

func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path())
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path(), []byte(token), 0o600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
