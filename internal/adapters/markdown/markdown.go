// Package markdown renders user-entered event descriptions as safe HTML.
package markdown

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// htmlSanitizer strips scripts, event handlers and other active content.
var htmlSanitizer = bluemonday.UGCPolicy()

// Render converts Markdown to sanitized HTML. If conversion fails the source is
// returned HTML-escaped.
func Render(src string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(htmlSanitizer.SanitizeBytes(buf.Bytes())) //nolint:gosec // sanitized above
}
