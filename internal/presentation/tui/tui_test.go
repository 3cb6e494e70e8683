package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/cantype"
	"github.com/aretw0/cantype/pkg/reflection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaMarkdown_Record(t *testing.T) {
	f := cantype.NewFactory()
	rec := reflection.NewRecordType("Point", map[string]any{
		"x": cantype.Number,
		"y": f.Maybe(cantype.Number),
	})

	md := SchemaMarkdown(f.All(rec))

	assert.Contains(t, md, "# all(check(Point))")
	assert.Contains(t, md, "_strict_")
	assert.Contains(t, md, "| x | `check(Number)` | no |")
	assert.Contains(t, md, "| y | `maybe(Number)` | yes |")
}

func TestSchemaMarkdown_Primitive(t *testing.T) {
	f := cantype.NewFactory()

	md := SchemaMarkdown(f.MaybeConvert(cantype.Boolean))
	assert.Contains(t, md, "_lenient, nullable_")
	assert.Contains(t, md, "- `true`")
	assert.Contains(t, md, "- `false`")
	assert.Contains(t, md, "- `null`")
	assert.Contains(t, md, "- `undefined`")

	assert.Contains(t, SchemaMarkdown(cantype.Any), "Accepts any value.")
}

func TestRenderTo_PlainForNonTerminals(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))

	out, err := RenderTo(&buf, "# title\n")
	require.NoError(t, err)
	assert.Equal(t, "# title\n", out)
}

func TestNewRenderer(t *testing.T) {
	out, err := NewRenderer()("# title\n")
	require.NoError(t, err)
	assert.Contains(t, out, "title")
}

func TestStatus_PlainForNonTerminals(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, "ok", Status(&buf, true, "ok"))
	assert.Equal(t, "bad", Status(&buf, false, "bad"))
}
