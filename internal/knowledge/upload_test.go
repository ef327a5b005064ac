package knowledge

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveUpload_ContainsDateStampAndExtension(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	path, err := SaveUpload(dir, "cv_mohan.pdf", []byte("%PDF-1.4"), now)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "cv_mohan_20260830.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
}

func TestSaveUpload_BlankName(t *testing.T) {
	dir := t.TempDir()

	_, err := SaveUpload(dir, "   ", []byte("data"), time.Now())

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file should be written on validation failure")
}

func TestSaveUpload_NilData(t *testing.T) {
	dir := t.TempDir()

	_, err := SaveUpload(dir, "cv.pdf", nil, time.Now())

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestSaveUpload_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "knowledge")

	_, err := SaveUpload(dir, "resume.txt", []byte("hello"), time.Now())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSaveUpload_StripsUploadPath(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveUpload(dir, "/tmp/uploads/resume.pdf", []byte("x"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path), "client-supplied path segments must be stripped")
}

func TestStampFilename(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "cv_20260830.pdf", StampFilename("cv.pdf", now))
	assert.Equal(t, "notes_20260830.tar.gz", StampFilename("notes.tar.gz", now))
	assert.Equal(t, "resume_20260830", StampFilename("resume", now))
}

func TestExtractText_PlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("John Doe\nEngineer"), 0o644))

	text, err := ExtractText(path)
	require.NoError(t, err)
	assert.Equal(t, "John Doe\nEngineer", text)
}

func TestExtractText_MissingFile(t *testing.T) {
	_, err := ExtractText(filepath.Join(t.TempDir(), "absent.txt"))

	var eerr *ExtractionError
	assert.True(t, errors.As(err, &eerr))
}

func TestExtractText_CorruptPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o644))

	_, err := ExtractText(path)

	var eerr *ExtractionError
	assert.True(t, errors.As(err, &eerr))
}
