// Package storage abstracts where uploaded report images are kept.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage saves uploaded images and returns a URL clients can fetch.
type Storage interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// objectName builds a collision-free name preserving the original extension.
func objectName(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("unsupported image extension %q", ext)
	}
	return uuid.New().String() + ext, nil
}

// ValidateContentType rejects anything that is not an image upload.
func ValidateContentType(contentType string) error {
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("unsupported content type %q", contentType)
	}
	return nil
}
