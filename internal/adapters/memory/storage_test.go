package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_GetMissingReturnsNil(t *testing.T) {
	s := NewStorage()
	v, err := s.Get(context.Background(), "user")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestStorage_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()

	require.NoError(t, s.Set(ctx, "user", []byte(`{"username":"alice"}`)))
	v, err := s.Get(ctx, "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"alice"}`, string(v))

	require.NoError(t, s.Delete(ctx, "user"))
	require.NoError(t, s.Delete(ctx, "user"))
	v, err = s.Get(ctx, "user")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestStorage_RejectsEmptyKey(t *testing.T) {
	assert.Error(t, NewStorage().Set(context.Background(), "", []byte("x")))
}

func TestProvider_ScopesAreIsolated(t *testing.T) {
	ctx := context.Background()
	p := NewProvider()

	require.NoError(t, p.ForScope("a").Set(ctx, "user", []byte("1")))
	v, err := p.ForScope("b").Get(ctx, "user")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = p.ForScope("a").Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
}
