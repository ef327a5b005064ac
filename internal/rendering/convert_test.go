package rendering

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chromeAvailable reports whether a Chrome binary can be found for the
// headless print tests.
func chromeAvailable() bool {
	if os.Getenv("CHROME_PATH") != "" {
		return true
	}
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func TestConvertFile_MissingSourceReturnsEmpty(t *testing.T) {
	conv := NewChromeConverter()

	path, err := conv.ConvertFile(context.Background(), filepath.Join(t.TempDir(), "absent.md"), t.TempDir())

	assert.NoError(t, err)
	assert.Empty(t, path)
}

func TestConvertFile_DirectorySourceReturnsEmpty(t *testing.T) {
	conv := NewChromeConverter()
	dir := t.TempDir()

	path, err := conv.ConvertFile(context.Background(), dir, t.TempDir())

	assert.NoError(t, err)
	assert.Empty(t, path)
}

func TestConvertFile_WritesPDFBesideName(t *testing.T) {
	if !chromeAvailable() {
		t.Skip("Skipping: no Chrome binary available for headless printing")
	}

	srcDir := t.TempDir()
	outDir := t.TempDir()
	mdPath := filepath.Join(srcDir, "final_report.md")
	content := []byte("# Report\n\n## Summary\n\nAll good.")
	require.NoError(t, os.WriteFile(mdPath, content, 0o644))

	conv := NewChromeConverter()
	pdfPath, err := conv.ConvertFile(context.Background(), mdPath, outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "final_report.pdf"), pdfPath)

	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output should be a PDF")

	// Source untouched.
	after, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Equal(t, content, after)
}

func TestConvertFile_Idempotent(t *testing.T) {
	if !chromeAvailable() {
		t.Skip("Skipping: no Chrome binary available for headless printing")
	}

	srcDir := t.TempDir()
	mdPath := filepath.Join(srcDir, "doc.md")
	require.NoError(t, os.WriteFile(mdPath, []byte("# Doc\n\ntext"), 0o644))

	conv := NewChromeConverter()
	first, err := conv.ConvertFile(context.Background(), mdPath, t.TempDir())
	require.NoError(t, err)
	second, err := conv.ConvertFile(context.Background(), mdPath, t.TempDir())
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEmpty(t, second)
}
