package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeAny(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestDetailExtractor_Defaults(t *testing.T) {
	d, err := NewDetailExtractor(nil)
	require.NoError(t, err)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"string detail", `{"detail":"bad creds"}`, "bad creds"},
		{"validation list", `{"detail":[{"loc":["body"],"msg":"field required"}]}`, "field required"},
		{"message fallback", `{"message":"nope"}`, "nope"},
		{"nothing usable", `{"error":{"code":1}}`, ""},
		{"empty detail", `{"detail":"   "}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Extract(decodeAny(t, tt.body)))
		})
	}
}

func TestDetailExtractor_Custom(t *testing.T) {
	d, err := NewDetailExtractor([]string{"error.text", " "})
	require.NoError(t, err)
	assert.Equal(t, "x", d.Extract(decodeAny(t, `{"error":{"text":"x"}}`)))
	assert.Equal(t, "", d.Extract(nil))
}

func TestDetailExtractor_InvalidExpression(t *testing.T) {
	_, err := NewDetailExtractor([]string{"detail[["})
	assert.Error(t, err)
}
