package source

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// hclDocument is the top-level structure of an HCL declaration document:
//
//	param "tags" {
//	  item_name = "tag"
//	  list      = true
//	}
type hclDocument struct {
	Params []*hclParam `hcl:"param,block"`
}

type hclParam struct {
	Name     string  `hcl:"name,label"`
	ItemName *string `hcl:"item_name,optional"`
	Required *bool   `hcl:"required,optional"`
	Nullable *bool   `hcl:"nullable,optional"`
	List     *bool   `hcl:"list,optional"`
	Map      *bool   `hcl:"map,optional"`
}

// HCL decodes an HCL declaration document into a sequence of entries, one
// per param block in source order.
func HCL(data []byte, filename string) (any, error) {
	f, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("source: parse hcl %s: %w", filename, diags)
	}
	var doc hclDocument
	if diags := gohcl.DecodeBody(f.Body, nil, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("source: decode hcl %s: %w", filename, diags)
	}

	entries := make([]any, 0, len(doc.Params))
	for _, p := range doc.Params {
		e := map[string]any{"name": p.Name}
		if p.ItemName != nil {
			e["itemName"] = *p.ItemName
		}
		setFlag(e, "isRequired", p.Required)
		setFlag(e, "isNullable", p.Nullable)
		setFlag(e, "isList", p.List)
		setFlag(e, "isMap", p.Map)
		entries = append(entries, e)
	}
	return entries, nil
}

func setFlag(e map[string]any, key string, v *bool) {
	if v != nil {
		e[key] = *v
	}
}
