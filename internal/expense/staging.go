package expense

import (
	"fmt"
	"os"
	"path/filepath"
)

// Staging defines the interface for temporary upload staging. Staged files
// live only for the duration of one scan request.
type Staging interface {
	// Stage writes an uploaded file and returns its staged name
	Stage(filename string, data []byte) (string, error)

	// Read retrieves a staged file by name
	Read(path string) ([]byte, error)

	// Remove deletes a staged file
	Remove(path string) error
}

// LocalStaging implements the Staging interface using a local directory
type LocalStaging struct {
	basePath string
}

// NewLocalStaging creates a new LocalStaging instance
func NewLocalStaging(basePath string) (*LocalStaging, error) {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}

	return &LocalStaging{
		basePath: basePath,
	}, nil
}

// Stage writes an uploaded file into the staging directory
func (l *LocalStaging) Stage(filename string, data []byte) (string, error) {
	path := filepath.Join(l.basePath, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return filename, nil
}

// Read retrieves a staged file
func (l *LocalStaging) Read(path string) ([]byte, error) {
	fullPath := filepath.Join(l.basePath, path)
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

// Remove deletes a staged file
func (l *LocalStaging) Remove(path string) error {
	fullPath := filepath.Join(l.basePath, path)
	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}
