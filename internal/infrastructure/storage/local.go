package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"homeserve.backend/pkg/crypto"
)

// LocalStorage stores uploaded files on the local filesystem. Store returns
// the relative path under the base directory; callers treat it as opaque.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage creates the base directory if needed and returns the store
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// Store writes the content under a unique name derived from the original
// filename. The original name only contributes its extension so uploads can
// never collide or escape the base directory.
func (s *LocalStorage) Store(ctx context.Context, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	token, err := crypto.GenerateRandomToken(16)
	if err != nil {
		return "", err
	}
	name := token + sanitizeExt(filename)

	f, err := os.Create(filepath.Join(s.baseDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return name, nil
}

// Delete removes a previously stored file. Deleting a path that is already
// gone is not an error.
func (s *LocalStorage) Delete(ctx context.Context, storagePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// stored paths are single path components; reject anything else
	if storagePath == "" || storagePath != filepath.Base(storagePath) {
		return fmt.Errorf("invalid storage path: %q", storagePath)
	}

	err := os.Remove(filepath.Join(s.baseDir, storagePath))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, r := range ext {
		if r != '.' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	if len(ext) > 10 {
		return ""
	}
	return ext
}
