package source

import (
	"github.com/invopop/jsonschema"

	"github.com/reoring/forge"
)

// Document is the object form of a JSON or YAML declaration document.
type Document struct {
	Params []forge.ParamSpec `json:"params" jsonschema:"description=Parameter specifications in constructor argument order"`
}

// Schema returns the JSON Schema of Document.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{DoNotReference: true}
	s := r.Reflect(&Document{})
	s.Title = "forge parameter declarations"
	return s
}
