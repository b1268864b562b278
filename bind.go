package forge

import (
	"fmt"
	"reflect"
)

// Bind derives a Factory from the exported fields of struct type T.
//
// Field names resolve via ResolveStructKey. The forge tag accepts
// required, nullable, list, map, scalar and item=<name>; slice fields (except
// []byte) default to list and map fields to map unless tagged scalar.
//
//	type Server struct {
//		Host  string            `forge:"required"`
//		Ports []int             `forge:"item=port"`
//		Env   map[string]string `json:"env"`
//	}
//	f, _ := forge.Bind[Server]()
//	srv, err := f.NewBuilder().Call("setHost", "h").Call("addPort", 80).Build()
func Bind[T any](opts ...Option) (*Factory[*T], error) {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if rt.Kind() != reflect.Struct {
		return nil, configError(fmt.Sprintf("expected a struct type, got %s", rt))
	}

	var (
		specs  []ParamSpec
		fields []int
	)
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := ResolveStructKey(sf)
		if key == "-" {
			continue
		}
		o := parseTagOptions(sf.Tag.Get("forge"))
		ps := ParamSpec{
			Name:       key,
			ItemName:   o.itemName,
			IsRequired: o.required,
			IsNullable: o.nullable,
			IsList:     o.list,
			IsMap:      o.isMap,
		}
		if !o.scalar && !o.list && !o.isMap {
			switch sf.Type.Kind() {
			case reflect.Slice:
				ps.IsList = sf.Type != bytesType
			case reflect.Map:
				ps.IsMap = true
			}
		}
		ps, err := checkSpec(len(specs), ps)
		if err != nil {
			return nil, err
		}
		specs = append(specs, ps)
		fields = append(fields, i)
	}

	ctor := Constructor[*T](func(args Args) (*T, error) {
		out := new(T)
		rv := reflect.ValueOf(out).Elem()
		for j, idx := range fields {
			if err := assignTo(specs[j].Name, rv.Field(idx), args[j]); err != nil {
				return nil, err
			}
		}
		return out, nil
	})
	return newFactory(specs, ctor, opts)
}
