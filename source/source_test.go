package source_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/forge"
	"github.com/reoring/forge/source"
)

var wantSpecs = []forge.ParamSpec{
	{Name: "host", IsRequired: true},
	{Name: "tags", ItemName: "tag", IsList: true},
	{Name: "labels", IsMap: true},
	{Name: "note", IsRequired: true, IsNullable: true},
}

const jsonDoc = `[
  {"name": "host", "isRequired": true},
  {"name": "tags", "itemName": "tag", "isList": true},
  {"name": "labels", "isMap": true},
  {"name": "note", "isRequired": true, "isNullable": true}
]`

const yamlDoc = `
params:
  - name: host
    isRequired: true
  - name: tags
    itemName: tag
    isList: true
  - name: labels
    isMap: true
  - name: note
    isRequired: true
    isNullable: true
`

const hclDoc = `
param "host" {
  required = true
}

param "tags" {
  item_name = "tag"
  list      = true
}

param "labels" {
  map = true
}

param "note" {
  required = true
  nullable = true
}
`

func TestSpecs_FormatsAgree(t *testing.T) {
	cases := []struct {
		name   string
		data   string
		format source.Format
	}{
		{"JSON", jsonDoc, source.FormatJSON},
		{"YAML", yamlDoc, source.FormatYAML},
		{"HCL", hclDoc, source.FormatHCL},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			specs, err := source.Specs([]byte(tc.data), tc.format, "decl."+tc.format.String())
			require.NoError(t, err)
			assert.Equal(t, wantSpecs, specs)
		})
	}
}

func TestJSON_ObjectForm(t *testing.T) {
	raw, err := source.JSON([]byte(`{"params": [{"name": "a"}]}`))
	require.NoError(t, err)
	specs, err := forge.ParseSpecs(raw)
	require.NoError(t, err)
	assert.Equal(t, []forge.ParamSpec{{Name: "a"}}, specs)
}

func TestDecode_FeedsCreate(t *testing.T) {
	raw, err := source.YAML([]byte(yamlDoc))
	require.NoError(t, err)

	f, err := forge.Create(raw, func(args forge.Args) (any, error) { return args, nil })
	require.NoError(t, err)
	got, err := f.NewBuilder().Call("setHost", "h").Call("addTag", "x").Call("setNote", nil).Build()
	require.NoError(t, err)
	args := got.(forge.Args)
	assert.Equal(t, "h", args[0])
	assert.Equal(t, []any{"x"}, args[1])
	assert.Equal(t, forge.Undefined, args[2])
	assert.Nil(t, args[3])
}

func TestDecode_InvalidEntries(t *testing.T) {
	_, err := source.Specs([]byte(`[{"name": "x", "isList": true, "isMap": true}]`), source.FormatJSON, "x.json")
	assert.ErrorIs(t, err, forge.ErrParamSpec)

	_, err = source.Specs([]byte(`[{"name": "x", "itemName": 3}]`), source.FormatJSON, "x.json")
	assert.ErrorIs(t, err, forge.ErrParamSpec)

	_, err = source.Specs([]byte(`- 1`), source.FormatYAML, "x.yaml")
	assert.ErrorIs(t, err, forge.ErrParamSpec)

	_, err = source.Specs([]byte(`param "" {}`), source.FormatHCL, "x.hcl")
	assert.ErrorIs(t, err, forge.ErrParamSpec)

	_, err = source.Specs([]byte(`"just a string"`), source.FormatJSON, "x.json")
	assert.ErrorIs(t, err, forge.ErrConfiguration)
}

func TestDecode_SyntaxErrors(t *testing.T) {
	_, err := source.JSON([]byte(`[{`))
	assert.Error(t, err)
	_, err = source.YAML([]byte("a: [b"))
	assert.Error(t, err)
	_, err = source.HCL([]byte(`param "x" {`), "x.hcl")
	assert.Error(t, err)
	_, err = source.HCL([]byte(`param "x" { required = "maybe" }`), "x.hcl")
	assert.Error(t, err)
	_, err = source.HCL([]byte(`resource "x" {}`), "x.hcl")
	assert.Error(t, err)
}

func TestHCL_EmptyDocument(t *testing.T) {
	raw, err := source.HCL(nil, "empty.hcl")
	require.NoError(t, err)
	specs, err := forge.ParseSpecs(raw)
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]source.Format{
		"a.json":     source.FormatJSON,
		"dir/b.yaml": source.FormatYAML,
		"c.YML":      source.FormatYAML,
		"d.hcl":      source.FormatHCL,
	}
	for path, want := range cases {
		got, err := source.FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := source.FormatFromPath("e.toml")
	assert.ErrorIs(t, err, source.ErrUnknownFormat)

	_, err = source.Decode(nil, source.Format(9), "x")
	assert.ErrorIs(t, err, source.ErrUnknownFormat)
}

func TestSchema(t *testing.T) {
	s := source.Schema()
	require.NotNil(t, s)
	assert.Equal(t, "forge parameter declarations", s.Title)

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"params"`)
	assert.Contains(t, string(out), `"itemName"`)
	assert.Contains(t, string(out), `"isRequired"`)
}
