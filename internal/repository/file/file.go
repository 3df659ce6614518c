package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is used for files created by this tool.
const DefaultFileMode os.FileMode = 0o644

// Reader reads whole files.
type Reader interface {
	Read(ctx context.Context, path string) ([]byte, error)
}

// Writer writes whole files.
type Writer interface {
	Write(ctx context.Context, path string, data []byte) error
}

// Repository reads and writes whole files.
type Repository interface {
	Reader
	Writer
}

// ErrNotFound is returned when the file to read does not exist.
var ErrNotFound = errors.New("file not found")

// FileRepository reads and writes files on the local disk.
type FileRepository struct{}

// NewFileRepository creates an OS-backed repository.
func NewFileRepository() *FileRepository {
	return new(FileRepository)
}

// Read returns the full contents of path.
func (r *FileRepository) Read(_ context.Context, path string) ([]byte, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, ErrNotFound)
		}

		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return contents, nil
}

// Write replaces the contents of path with data, creating the file if needed.
func (r *FileRepository) Write(_ context.Context, path string, data []byte) error {
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFileMode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
