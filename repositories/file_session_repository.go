package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type sessionFile struct {
	AccessToken string `json:"access_token,omitempty"`
	User        string `json:"user,omitempty"`
}

// FileSessionRepository keeps the session in a single 0600 JSON file.
// Writes go to a temp file in the same directory and are renamed into place.
type FileSessionRepository struct {
	path string
}

func NewFileSessionRepository(path string) *FileSessionRepository {
	return &FileSessionRepository{path: path}
}

func (r *FileSessionRepository) Path() string {
	return r.path
}

func (r *FileSessionRepository) Load(ctx context.Context) (string, []byte, error) {
	data, err := r.read()
	if err != nil {
		return "", nil, err
	}
	var identity []byte
	if data.User != "" {
		identity = []byte(data.User)
	}
	return data.AccessToken, identity, nil
}

func (r *FileSessionRepository) Token(ctx context.Context) (string, error) {
	data, err := r.read()
	if err != nil {
		return "", err
	}
	return data.AccessToken, nil
}

func (r *FileSessionRepository) Save(ctx context.Context, token string, identity []byte) error {
	raw, err := json.MarshalIndent(sessionFile{AccessToken: token, User: string(identity)}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (r *FileSessionRepository) Delete(ctx context.Context) error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (r *FileSessionRepository) read() (sessionFile, error) {
	var data sessionFile
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return data, nil
	}
	if err != nil {
		return data, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("decode session file: %w", err)
	}
	return data, nil
}
