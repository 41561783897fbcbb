package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		contains []string
		excludes []string
	}{
		{
			name:     "emphasis and lists",
			in:       "Bring a **laptop**.\n\n- snacks\n- water",
			contains: []string{"<strong>laptop</strong>", "<li>snacks</li>"},
		},
		{
			name:     "raw script dropped",
			in:       "Hello <script>alert(1)</script> world",
			excludes: []string{"<script", "alert(1)</script>"},
		},
		{
			name:     "javascript link neutralized",
			in:       "[click](javascript:alert(1))",
			excludes: []string{"javascript:"},
		},
		{
			name:     "plain text",
			in:       "Annual coding competition for students.",
			contains: []string{"<p>Annual coding competition for students.</p>"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Render(tt.in))
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.excludes {
				assert.False(t, strings.Contains(got, s), "unexpected %q in %q", s, got)
			}
		})
	}
}
