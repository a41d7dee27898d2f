package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRendererParsesEveryPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	for _, page := range pages {
		assert.Contains(t, r.templates, page)
	}
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var sb strings.Builder
	assert.Error(t, r.Render(&sb, "nope", nil))
}

func TestRenderEscapesUserContent(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var sb strings.Builder
	err = r.Render(&sb, "login", map[string]any{
		"CurrUser": nil,
		"Flashes": []struct {
			Kind    string
			Message string
		}{{Kind: "error", Message: "<script>alert(1)</script>"}},
	})
	require.NoError(t, err)

	out := sb.String()
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;script&gt;")
}
