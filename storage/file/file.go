// Package file persists the session as a JSON file, the client-side
// analogue of browser localStorage.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/deepakSingh023/blogclient/models"
	"github.com/deepakSingh023/blogclient/storage"
)

type FileSessionStorage struct {
	path string
}

// NewFileSessionStorage stores the session at path. An empty path picks
// a default under the user config dir.
func NewFileSessionStorage(path string) (*FileSessionStorage, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(configDir, "blogclient", "session.json")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileSessionStorage{path: path}, nil
}

func (fs *FileSessionStorage) Load(ctx context.Context) (models.Session, error) {
	b, err := os.ReadFile(fs.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.Session{}, storage.ErrNoStoredSession
		}
		return models.Session{}, fmt.Errorf("read session file: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(b, &session); err != nil {
		// A corrupt file is treated as logged out rather than fatal.
		os.Remove(fs.path)
		return models.Session{}, storage.ErrNoStoredSession
	}
	if session.Token == "" {
		return models.Session{}, storage.ErrNoStoredSession
	}
	return session, nil
}

func (fs *FileSessionStorage) Save(ctx context.Context, session models.Session) error {
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}

	// Write-then-rename so a crash never leaves a half-written credential.
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (fs *FileSessionStorage) Clear(ctx context.Context) error {
	if err := os.Remove(fs.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
