package renderer

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var htmlConverter = goldmark.New(goldmark.WithExtensions(extension.Table))

// HTML converts a markdown document into an HTML fragment.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := htmlConverter.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("cannot convert markdown to html: %w", err)
	}
	return buf.String(), nil
}
