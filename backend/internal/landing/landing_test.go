package landing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Run("production", func(t *testing.T) {
		html, err := New(Options{}).Render("http://localhost:8080")
		require.NoError(t, err)

		s := string(html)
		assert.True(t, strings.HasPrefix(s, "<!DOCTYPE html>"))
		assert.Contains(t, s, "<h1>Hello World!</h1>")
		// snippet is shown as code, not executed
		assert.Contains(t, s, "&lt;script src=")
		assert.Contains(t, s, "http://localhost:8080/feedback/&lt;slug&gt;/widget.js")
		assert.Contains(t, s, `<script src="http://localhost:8080/feedback/demo/widget.js"></script>`)
		assert.Contains(t, s, "<table>")
		assert.NotContains(t, s, "/live.js")
	})

	t.Run("development adds live reload", func(t *testing.T) {
		html, err := New(Options{LiveReload: true, DemoSlug: "code-pen"}).Render("https://feedback.example.com")
		require.NoError(t, err)

		s := string(html)
		assert.Contains(t, s, `<script src="/live.js"></script>`)
		assert.Contains(t, s, `<script src="https://feedback.example.com/feedback/code-pen/widget.js"></script>`)
	})

	t.Run("hostile base url stays inert", func(t *testing.T) {
		html, err := New(Options{}).Render(`https://x"><img src=x onerror=alert(1)>`)
		require.NoError(t, err)

		assert.NotContains(t, string(html), "<img")
		assert.NotContains(t, string(html), `"><img`)
	})
}
