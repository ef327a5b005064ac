package rendering

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ChromeConverter converts Markdown files to PDF via headless Chrome.
type ChromeConverter struct{}

// NewChromeConverter returns the production Markdown-to-PDF converter.
func NewChromeConverter() *ChromeConverter { return &ChromeConverter{} }

// ConvertFile converts one Markdown file to a PDF written in outDir, named
// like the source with a .pdf extension. A missing source file is not an
// error: the empty path tells the caller the artifact was never produced and
// should be skipped. The source file is never modified.
func (c *ChromeConverter) ConvertFile(ctx context.Context, mdPath, outDir string) (string, error) {
	info, err := os.Stat(mdPath)
	if err != nil || info.IsDir() {
		return "", nil
	}

	source, err := os.ReadFile(mdPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", mdPath, err)
	}

	html, err := RenderHTML(source)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", mdPath, err)
	}

	pdfData, err := PrintHTMLToPDF(ctx, html)
	if err != nil {
		return "", fmt.Errorf("failed to print %s to PDF: %w", mdPath, err)
	}

	base := strings.TrimSuffix(filepath.Base(mdPath), filepath.Ext(mdPath))
	pdfPath := filepath.Join(outDir, base+".pdf")
	if err := os.WriteFile(pdfPath, pdfData, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", pdfPath, err)
	}
	return pdfPath, nil
}
