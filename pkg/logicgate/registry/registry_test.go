package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/randalmurphal/logicgate/pkg/logicgate/params"
	"github.com/randalmurphal/logicgate/pkg/logicgate/registry"
	"github.com/randalmurphal/logicgate/pkg/logicgate/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticFactory(p params.Params) (resolver.Requirement, error) {
	return resolver.Static(p.Bool("value", false)), nil
}

func TestRegisterAndBuild(t *testing.T) {
	reg := registry.New()
	reg.Register("static", staticFactory)

	req, err := reg.Build("static", params.New(map[string]any{"value": true}))
	require.NoError(t, err)

	got, err := req.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, got)
}

func TestBuild_UnknownType(t *testing.T) {
	reg := registry.New()
	reg.Register("static", staticFactory)

	_, err := reg.Build("holds_token", params.New(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown requirement type "holds_token"`)
	assert.Contains(t, err.Error(), "static")
}

func TestBuild_FactoryError(t *testing.T) {
	reg := registry.New()
	reg.Register("broken", func(params.Params) (resolver.Requirement, error) {
		return nil, errors.New("missing address param")
	})

	_, err := reg.Build("broken", params.New(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `build requirement "broken"`)
}

func TestRegister_Replace(t *testing.T) {
	reg := registry.New()
	reg.Register("free", func(params.Params) (resolver.Requirement, error) {
		return resolver.Static(false), nil
	})
	reg.Register("free", func(params.Params) (resolver.Requirement, error) {
		return resolver.Static(true), nil
	})

	req, err := reg.Build("free", params.New(nil))
	require.NoError(t, err)
	got, err := req.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, got, "later registration must win")
}

func TestRegister_NilFactoryPanics(t *testing.T) {
	reg := registry.New()
	assert.Panics(t, func() {
		reg.Register("nil", nil)
	})
}

func TestKeysAndLen(t *testing.T) {
	reg := registry.New()
	assert.Zero(t, reg.Len())
	assert.Empty(t, reg.Keys())

	reg.Register("b", staticFactory)
	reg.Register("a", staticFactory)

	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"a", "b"}, reg.Keys())
	assert.True(t, reg.Has("a"))
	assert.False(t, reg.Has("c"))
}

func TestDefaultRegistry(t *testing.T) {
	// Use a name unlikely to collide with other tests sharing the
	// process-wide default.
	registry.Register("registry_test_static", staticFactory)
	assert.True(t, registry.Default().Has("registry_test_static"))

	req, err := registry.Build("registry_test_static", params.New(map[string]any{"value": true}))
	require.NoError(t, err)
	got, err := req.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, got)
}
