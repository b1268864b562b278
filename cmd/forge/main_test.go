package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/reoring/forge"
)

const decl = `
param "host" {
  required = true
}

param "ports" {
  item_name = "port"
  list      = true
}
`

func writeDecl(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckCmd_Text(t *testing.T) {
	path := writeDecl(t, "server.hcl", decl)
	var out bytes.Buffer
	checkCmd([]string{"-f", path}, &out)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "2 params")
	assert.Equal(t, "  setHost", lines[1])
	assert.Equal(t, "  setPorts", lines[2])
	assert.Equal(t, "  addPort", lines[3])
}

func TestCheckCmd_JSON(t *testing.T) {
	path := writeDecl(t, "server.json", `[{"name": "host", "isRequired": true}]`)
	var out bytes.Buffer
	checkCmd([]string{"-f", path, "-json"}, &out)

	var report checkReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, path, report.File)
	assert.Equal(t, []forge.ParamSpec{{Name: "host", IsRequired: true}}, report.Params)
	assert.Equal(t, []string{"setHost"}, report.Methods)
}

func TestLoadSpecs_Errors(t *testing.T) {
	log := zap.NewNop()

	_, err := loadSpecs(writeDecl(t, "x.toml", ""), log)
	assert.Error(t, err)

	_, err = loadSpecs(filepath.Join(t.TempDir(), "missing.yaml"), log)
	assert.Error(t, err)

	_, err = loadSpecs(writeDecl(t, "bad.yaml", "- name: x\n  isList: true\n  isMap: true\n"), log)
	assert.ErrorIs(t, err, forge.ErrParamSpec)
	assert.Contains(t, describe(err), "invalid parameter specification")
}

func TestSchemaCmd(t *testing.T) {
	var out bytes.Buffer
	schemaCmd(&out)
	assert.Contains(t, out.String(), "forge parameter declarations")
}
