package jsonview

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_NestedObjectAndArray(t *testing.T) {
	v, err := Decode([]byte(`{"a": 1, "b": [2, 3]}`))
	require.NoError(t, err)

	root := Render(v)

	require.Equal(t, KindObject, root.Kind)
	require.Len(t, root.Children, 2)

	a := root.Children[0]
	assert.Equal(t, "a", a.Key)
	assert.True(t, a.IsLeaf())
	assert.Equal(t, "1", a.Value)

	b := root.Children[1]
	assert.Equal(t, "b", b.Key)
	assert.Equal(t, KindArray, b.Kind)
	require.Len(t, b.Children, 2)
	assert.Equal(t, "2", b.Children[0].Value)
	assert.Equal(t, "3", b.Children[1].Value)
	assert.False(t, b.Children[0].HasKey())
}

func TestRender_PrimitiveCoercion(t *testing.T) {
	v, err := Decode([]byte(`{"f": 1.5, "t": true, "n": null, "s": "text", "big": 12345678901234567890}`))
	require.NoError(t, err)

	got := map[string]string{}
	for _, c := range Render(v).Children {
		got[c.Key] = c.Value
	}

	assert.Equal(t, map[string]string{
		"big": "12345678901234567890",
		"f":   "1.5",
		"n":   "null",
		"s":   "text",
		"t":   "true",
	}, got)
}

func TestRender_TopLevelPrimitiveIsLeaf(t *testing.T) {
	n := Render("just text")
	assert.True(t, n.IsLeaf())
	assert.Equal(t, "just text", n.Value)
}

func TestRender_EmptyKeyIsStillKeyed(t *testing.T) {
	var v any
	require.NoError(t, json.Unmarshal([]byte(`{"": 1}`), &v))

	root := Render(v)

	require.Len(t, root.Children, 1)
	assert.True(t, root.Children[0].HasKey())
	assert.Equal(t, "1", root.Children[0].Value)
}

func TestStringify_Float64(t *testing.T) {
	assert.Equal(t, "2", Stringify(float64(2)))
	assert.Equal(t, "0.25", Stringify(0.25))
}

func TestDecodeField(t *testing.T) {
	str := func(s string) *string { return &s }

	t.Run("nil is absent", func(t *testing.T) {
		f := DecodeField(nil)
		assert.False(t, f.Present)
	})

	t.Run("empty is absent", func(t *testing.T) {
		assert.False(t, DecodeField(str("")).Present)
	})

	t.Run("json null is absent", func(t *testing.T) {
		assert.False(t, DecodeField(str("null")).Present)
	})

	t.Run("valid json parses", func(t *testing.T) {
		f := DecodeField(str(`{"parties": ["Acme", "Globex"]}`))
		assert.True(t, f.Present)
		assert.True(t, f.Parsed)
		require.NotNil(t, f.Tree)
		assert.Equal(t, "parties", f.Tree.Children[0].Key)
		assert.NoError(t, f.Err)
	})

	t.Run("invalid json falls back to raw", func(t *testing.T) {
		f := DecodeField(str("{invalid json"))
		assert.True(t, f.Present)
		assert.False(t, f.Parsed)
		assert.Equal(t, "{invalid json", f.Raw)
		assert.Nil(t, f.Tree)
		assert.Error(t, f.Err)
	})

	t.Run("trailing data falls back to raw", func(t *testing.T) {
		f := DecodeField(str(`{"a":1} trailing`))
		assert.False(t, f.Parsed)
		assert.Equal(t, `{"a":1} trailing`, f.Raw)
	})
}

func TestWriteText(t *testing.T) {
	v, err := Decode([]byte(`{"term":{"months":12},"parties":["Acme",{"name":"Bob"}],"signed":true}`))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Render(v)))

	want := strings.Join([]string{
		"- parties:",
		"  - Acme",
		"  -",
		"    - name: Bob",
		"- signed: true",
		"- term:",
		"  - months: 12",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteText_TopLevelPrimitive(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Render("plain")))
	assert.Equal(t, "- plain\n", buf.String())
}
