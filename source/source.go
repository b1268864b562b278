// Package source decodes parameter declaration documents into the untyped
// form accepted by forge.Create and forge.ParseSpecs.
//
// A document is either a top-level sequence of entries or an object holding
// the sequence under "params". Entries use the keys name, itemName,
// isRequired, isNullable, isList and isMap. HCL documents use param blocks
// instead; see HCL.
package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/reoring/forge"
)

// Format identifies a declaration document syntax.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatHCL
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatHCL:
		return "hcl"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ErrUnknownFormat is returned when a file extension maps to no Format.
var ErrUnknownFormat = errors.New("source: unknown declaration format")

// FormatFromPath selects a Format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Decode decodes data in the given format. filename is only used in
// diagnostics.
func Decode(data []byte, f Format, filename string) (any, error) {
	switch f {
	case FormatJSON:
		return JSON(data)
	case FormatYAML:
		return YAML(data)
	case FormatHCL:
		return HCL(data, filename)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
}

// Specs decodes data and validates the entries with forge.ParseSpecs.
func Specs(data []byte, f Format, filename string) ([]forge.ParamSpec, error) {
	raw, err := Decode(data, f, filename)
	if err != nil {
		return nil, err
	}
	return forge.ParseSpecs(raw)
}

// unwrapDocument returns the "params" member of an object document, or the
// document itself.
func unwrapDocument(v any) any {
	if m, ok := v.(map[string]any); ok {
		if params, ok := m["params"]; ok {
			return params
		}
	}
	return v
}
