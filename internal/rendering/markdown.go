// Package rendering converts the Markdown deliverables of a run into
// paginated PDF documents with a generated table of contents.
package rendering

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// TOCMaxLevel limits the generated table of contents to heading levels 1-2.
const TOCMaxLevel = 2

// tocEntry is one heading collected for the table of contents.
type tocEntry struct {
	Level int
	Title string
	ID    string
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// RenderHTML converts Markdown source into a complete printable HTML page:
// a table of contents built from heading levels 1-2, followed by the rendered
// document body.
func RenderHTML(source []byte) (string, error) {
	entries, err := collectHeadings(source)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := markdown.Convert(source, &body); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	var page strings.Builder
	page.WriteString(pageHeader)
	if len(entries) > 0 {
		writeTOC(&page, entries)
	}
	page.WriteString(`<div class="document">`)
	page.WriteString(body.String())
	page.WriteString("</div>")
	page.WriteString(pageFooter)
	return page.String(), nil
}

// collectHeadings walks the parsed document and records level 1-2 headings
// with the auto-generated anchor IDs the HTML renderer will emit.
func collectHeadings(source []byte) ([]tocEntry, error) {
	ctx := parser.NewContext()
	doc := markdown.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	var entries []tocEntry
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level > TOCMaxLevel {
			return ast.WalkContinue, nil
		}

		id := ""
		if v, ok := heading.AttributeString("id"); ok {
			if b, ok := v.([]byte); ok {
				id = string(b)
			}
		}
		entries = append(entries, tocEntry{
			Level: heading.Level,
			Title: string(heading.Text(source)),
			ID:    id,
		})
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk markdown document: %w", err)
	}
	return entries, nil
}

// writeTOC emits the table of contents block. It pages separately from the
// document body when printed.
func writeTOC(page *strings.Builder, entries []tocEntry) {
	page.WriteString(`<nav class="toc"><h2>Contents</h2><ul>`)
	for _, e := range entries {
		fmt.Fprintf(page, `<li class="toc-l%d"><a href="#%s">%s</a></li>`, e.Level, e.ID, htmlEscape(e.Title))
	}
	page.WriteString(`</ul></nav>`)
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

const pageHeader = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><style>
body { font-family: Georgia, serif; font-size: 11pt; line-height: 1.45; margin: 0; }
h1 { font-size: 18pt; border-bottom: 1px solid #333; padding-bottom: 4px; }
h2 { font-size: 14pt; margin-top: 18px; }
.toc { page-break-after: always; }
.toc ul { list-style: none; padding-left: 0; }
.toc .toc-l2 { padding-left: 18px; }
.toc a { text-decoration: none; color: #000; }
h1, h2 { page-break-after: avoid; }
pre, table { page-break-inside: avoid; }
</style></head><body>`

const pageFooter = `</body></html>`
