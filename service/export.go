package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ExportStorage keeps downloaded CSV exports on disk so they can be
// re-fetched after the browser download completes.
type ExportStorage struct {
	exportsDir string
}

func NewExportStorage(exportsDir string) (*ExportStorage, error) {
	if err := os.MkdirAll(exportsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create exports directory: %w", err)
	}
	return &ExportStorage{exportsDir: exportsDir}, nil
}

// GenerateFileName creates a unique filename with timestamp and nanos.
func (e *ExportStorage) GenerateFileName() string {
	timestamp := time.Now().Format("20060102_150405")
	nanos := time.Now().UnixNano()
	return fmt.Sprintf("result_%s_%d.csv", timestamp, nanos)
}

// Save writes one export and returns its filename.
func (e *ExportStorage) Save(csv string) (string, error) {
	filename := e.GenerateFileName()
	filePath := filepath.Join(e.exportsDir, filename)

	if err := os.WriteFile(filePath, []byte(csv), 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}
	return filename, nil
}

// Path returns the full path to a previously saved export.
func (e *ExportStorage) Path(filename string) string {
	return filepath.Join(e.exportsDir, filepath.Base(filename))
}
