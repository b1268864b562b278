// Package gen renders statically typed builder wrappers for declaration
// documents.
package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"strconv"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/reoring/forge"
)

// File describes one generated source file.
type File struct {
	Package string
	// Type is the target struct type, declared elsewhere in Package.
	Type string
	// Ctor names a forge.Constructor[*Type] declared elsewhere in Package.
	Ctor   string
	Params []forge.ParamSpec
}

type method struct {
	Name  string // exported Go method name
	Field string // forge field name
	Kind  string // set, add, put
}

type view struct {
	File
	Factory string
	Methods []method
}

var tmpl = template.Must(template.New("builder").Funcs(template.FuncMap{
	"quote": strconv.Quote,
	"spec":  specLiteral,
}).Parse(`// Code generated by forge gen. DO NOT EDIT.

package {{.Package}}

import "github.com/reoring/forge"

var {{.Factory}} = forge.MustNew([]forge.ParamSpec{
{{- range .Params}}
	{{spec .}},
{{- end}}
}, forge.Constructor[*{{.Type}}]({{.Ctor}}))

// {{.Type}}Builder builds {{.Type}} values.
type {{.Type}}Builder struct {
	b *forge.Builder[*{{.Type}}]
}

// New{{.Type}}Builder returns an empty {{.Type}}Builder.
func New{{.Type}}Builder() *{{.Type}}Builder {
	return &{{.Type}}Builder{b: {{.Factory}}.NewBuilder()}
}
{{range .Methods}}
{{- if eq .Kind "put"}}
func (x *{{$.Type}}Builder) {{.Name}}(key, v any) *{{$.Type}}Builder {
	x.b.Put({{quote .Field}}, key, v)
	return x
}
{{else if eq .Kind "add"}}
func (x *{{$.Type}}Builder) {{.Name}}(v any) *{{$.Type}}Builder {
	x.b.Add({{quote .Field}}, v)
	return x
}
{{else}}
func (x *{{$.Type}}Builder) {{.Name}}(v any) *{{$.Type}}Builder {
	x.b.Set({{quote .Field}}, v)
	return x
}
{{end}}
{{- end}}
// Build validates the accumulated fields and constructs the {{.Type}}.
func (x *{{.Type}}Builder) Build() (*{{.Type}}, error) {
	return x.b.Build()
}
`))

// Render produces gofmt-ed Go source for f.
func Render(f File) ([]byte, error) {
	for _, id := range []string{f.Package, f.Type, f.Ctor} {
		if !token.IsIdentifier(id) {
			return nil, fmt.Errorf("gen: %q is not a Go identifier", id)
		}
	}
	// validates the specs exactly as the generated MustNew will
	if _, err := forge.New[any](f.Params, func(forge.Args) (any, error) { return nil, nil }); err != nil {
		return nil, fmt.Errorf("gen: %w", err)
	}

	v := view{File: f, Factory: lowerFirst(f.Type) + "BuilderFactory"}
	for _, ps := range f.Params {
		m := method{Name: exported(forge.SetterName(ps)), Field: ps.Name, Kind: "set"}
		if !token.IsIdentifier(m.Name) {
			return nil, fmt.Errorf("gen: field %q does not form a Go method name", ps.Name)
		}
		v.Methods = append(v.Methods, m)
		if acc := forge.AccumulatorName(ps); acc != "" {
			m := method{Name: exported(acc), Field: ps.Name, Kind: "add"}
			if ps.IsMap {
				m.Kind = "put"
			}
			if !token.IsIdentifier(m.Name) {
				return nil, fmt.Errorf("gen: item %q does not form a Go method name", acc)
			}
			v.Methods = append(v.Methods, m)
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("gen: render: %w", err)
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("gen: format: %w", err)
	}
	return out, nil
}

func specLiteral(ps forge.ParamSpec) string {
	b := &bytes.Buffer{}
	fmt.Fprintf(b, "{Name: %s", strconv.Quote(ps.Name))
	if ps.ItemName != "" {
		fmt.Fprintf(b, ", ItemName: %s", strconv.Quote(ps.ItemName))
	}
	if ps.IsRequired {
		b.WriteString(", IsRequired: true")
	}
	if ps.IsNullable {
		b.WriteString(", IsNullable: true")
	}
	if ps.IsList {
		b.WriteString(", IsList: true")
	}
	if ps.IsMap {
		b.WriteString(", IsMap: true")
	}
	b.WriteString("}")
	return b.String()
}

func exported(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[n:]
}
