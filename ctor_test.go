package forge_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/forge"
)

type endpoint struct {
	Host  string
	Port  int
	Paths []string
}

var endpointSpecs = []any{
	map[string]any{"name": "host", "isRequired": true},
	map[string]any{"name": "port"},
	map[string]any{"name": "paths", "itemName": "path", "isList": true},
}

func TestCreate_PositionalConstructor(t *testing.T) {
	f, err := forge.Create(endpointSpecs, func(host string, port int, paths []string) *endpoint {
		return &endpoint{Host: host, Port: port, Paths: paths}
	})
	require.NoError(t, err)

	got, err := f.NewBuilder().
		Call("setHost", "example.org").
		Call("addPath", "/a").
		Call("addPath", "/b").
		Build()
	require.NoError(t, err)

	ep, ok := got.(*endpoint)
	require.True(t, ok, "got %T", got)
	assert.Equal(t, &endpoint{Host: "example.org", Port: 0, Paths: []string{"/a", "/b"}}, ep)
}

func TestCreate_PositionalConstructorWithError(t *testing.T) {
	errPort := errors.New("port out of range")
	f, err := forge.Create(endpointSpecs, func(host string, port int, paths []string) (*endpoint, error) {
		if port > 65535 {
			return nil, errPort
		}
		return &endpoint{Host: host, Port: port}, nil
	})
	require.NoError(t, err)

	_, err = f.NewBuilder().Call("setHost", "h").Call("setPort", 70000).Build()
	assert.Same(t, errPort, err)

	got, err := f.NewBuilder().Call("setHost", "h").Call("setPort", 8080).Build()
	require.NoError(t, err)
	assert.Equal(t, 8080, got.(*endpoint).Port)
}

func TestCreate_PositionalConstructorTypeMismatch(t *testing.T) {
	f, err := forge.Create(endpointSpecs, func(host string, port int, paths []string) *endpoint {
		return &endpoint{}
	})
	require.NoError(t, err)

	_, err = f.NewBuilder().Call("setHost", "h").Call("setPort", "8080").Build()
	assert.ErrorIs(t, err, forge.ErrUsage)
}

func TestCreate_VariadicConstructor(t *testing.T) {
	f, err := forge.Create(endpointSpecs, func(args ...any) string {
		return fmt.Sprint(len(args), " ", args[0], " ", forge.IsUndefined(args[1]))
	})
	require.NoError(t, err)

	got, err := f.NewBuilder().Call("setHost", "h").Build()
	require.NoError(t, err)
	assert.Equal(t, "3 h true", got)
}

func TestCreate_ArgsConstructor(t *testing.T) {
	f, err := forge.Create(endpointSpecs, func(args forge.Args) int { return len(args) })
	require.NoError(t, err)

	got, err := f.NewBuilder().Call("setHost", "h").Build()
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestCreate_ConstructorConstructorType(t *testing.T) {
	ctor := forge.Constructor[any](func(args forge.Args) (any, error) { return args.Value(0), nil })
	f, err := forge.Create(endpointSpecs, ctor)
	require.NoError(t, err)

	got, err := f.NewBuilder().Call("setHost", "h").Build()
	require.NoError(t, err)
	assert.Equal(t, "h", got)
}

func TestCreate_AccumulatedMapIntoGoMap(t *testing.T) {
	specs := []any{map[string]any{"name": "env", "itemName": "var", "isMap": true}}
	f, err := forge.Create(specs, func(env map[string]string) map[string]string { return env })
	require.NoError(t, err)

	got, err := f.NewBuilder().Call("addVar", "A", "1").Call("addVar", "B", "2").Build()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, got)

	_, err = f.NewBuilder().Call("addVar", "A", 1).Build()
	assert.ErrorIs(t, err, forge.ErrUsage)
}
