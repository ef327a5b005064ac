// Package knowledge persists uploaded resumes and exposes their text content
// as the knowledge source consumed by the agent pipeline.
package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SaveUpload writes an uploaded resume into dir under a date-qualified name
// derived from the original filename: <base>_<YYYYMMDD><ext>. The directory is
// created if absent. Returns the full path of the stored file.
//
// A same-day re-upload with the same original name overwrites the previous
// copy; the stored name is keyed by basename and date only.
func SaveUpload(dir, originalName string, data []byte, now time.Time) (string, error) {
	if strings.TrimSpace(originalName) == "" {
		return "", &ValidationError{Message: "please upload a resume"}
	}
	if data == nil {
		return "", &ValidationError{Message: "uploaded resume is empty"}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create knowledge directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, StampFilename(filepath.Base(originalName), now))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save resume %s: %w", path, err)
	}
	return path, nil
}

// StampFilename inserts a YYYYMMDD date stamp between the basename and the
// extension, preserving the original extension.
func StampFilename(name string, now time.Time) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s_%s%s", base, now.Format("20060102"), ext)
}
