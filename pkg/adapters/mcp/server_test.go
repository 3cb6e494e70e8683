package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/cantype"
	"github.com/aretw0/cantype/pkg/dsl"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	b := dsl.New()
	b.Add("Point").
		Field("x", "Number").
		Field("y", "maybe(Number)")
	decls, err := b.Build(cantype.NewFactory())
	require.NoError(t, err)

	return NewServer(decls, nil)
}

func TestHandleCoerce(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	resp, err := s.handleCoerce(ctx, mcp.CallToolRequest{}, CoerceArgs{Type: "Point", Value: `{"x":"1"}`})
	require.NoError(t, err)
	assert.Equal(t, "all(convert(Point))", resp.Type)
	assert.Empty(t, resp.Error)

	out, err := json.Marshal(resp.Value)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":1}`, string(out))

	resp, err = s.handleCoerce(ctx, mcp.CallToolRequest{}, CoerceArgs{Type: "Number", Policy: "check", Value: `"3"`})
	require.NoError(t, err)
	assert.Equal(t, "3 (String) is not of type Number.", resp.Error)
	assert.Nil(t, resp.Value)
}

func TestHandleCoerce_InvalidRequests(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	for _, args := range []CoerceArgs{
		{Value: `1`},
		{Type: "Ghost", Value: `1`},
		{Type: "Number", Policy: "sometimes", Value: `1`},
		{Type: "Number", Value: `{`},
	} {
		_, err := s.handleCoerce(ctx, mcp.CallToolRequest{}, args)
		assert.Error(t, err, "%+v", args)
	}
}

func TestDescribe(t *testing.T) {
	s := newTestServer(t)

	text, err := s.describe(SchemaArgs{Type: "Point"})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &doc))
	assert.Contains(t, doc["properties"], "x")
}

func TestTypesDocument(t *testing.T) {
	s := newTestServer(t)

	text, err := s.typesDocument()
	require.NoError(t, err)
	assert.JSONEq(t, `{"Point":{"type":"map","keys":{"x":"check(Number)","y":"maybe(Number)"}}}`, text)
}
