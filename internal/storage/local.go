package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage writes uploads to a directory served as static files.
type LocalStorage struct {
	dir     string
	urlBase string
}

// NewLocalStorage creates the upload directory if needed.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir, urlBase: "/uploads"}, nil
}

func (s *LocalStorage) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if err := ValidateContentType(contentType); err != nil {
		return "", err
	}
	name, err := objectName(filename)
	if err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}

	return s.urlBase + "/" + name, nil
}
