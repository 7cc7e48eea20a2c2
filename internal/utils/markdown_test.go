package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	out := string(RenderMarkdown("# Hello\n\nsome *body* text"))
	require.Contains(t, out, "Hello")
	require.Contains(t, out, "<em>body</em>")
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	out := string(RenderMarkdown("hi <script>alert(1)</script>"))
	require.False(t, strings.Contains(out, "<script>"))
	require.Contains(t, out, "hi")
}
