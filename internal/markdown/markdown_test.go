package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_BasicDocument(t *testing.T) {
	out, err := Render([]byte("# Gofem\n\nFinite element *method*.\n"))
	require.NoError(t, err)
	require.Contains(t, string(out), "<h1>Gofem</h1>")
	require.Contains(t, string(out), "<em>method</em>")
}

func TestRender_EmptyInput(t *testing.T) {
	out, err := Render(nil)
	require.NoError(t, err)
	require.Empty(t, string(out))
}
