package utils

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

var (
	plainMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
	codeMarkdown = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(highlighting.WithStyle("monokai")),
		),
	)
)

// RenderMarkdown converts model output to HTML. Raw HTML in src is omitted.
func RenderMarkdown(src string, highlight bool) (template.HTML, error) {
	md := plainMarkdown
	if highlight {
		md = codeMarkdown
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
