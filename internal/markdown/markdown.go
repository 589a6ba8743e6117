package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// Render converts a Markdown document to HTML.
func Render(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}
