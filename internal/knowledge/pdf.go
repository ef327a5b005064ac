package knowledge

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText returns the plain text content of a stored resume. PDF files are
// parsed page by page; anything else is read verbatim and assumed to be text
// (plain text or Markdown resumes).
func ExtractText(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return extractPDFText(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Cause: err}
	}
	return string(data), nil
}

// extractPDFText pulls text out of a PDF using the pdf reader library.
func extractPDFText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Cause: err}
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	content, err := reader.GetPlainText()
	if err != nil {
		return "", &ExtractionError{Path: path, Cause: err}
	}
	if _, err := buf.ReadFrom(content); err != nil {
		return "", &ExtractionError{Path: path, Cause: err}
	}

	return buf.String(), nil
}
