package forge

import (
	"reflect"
	"strings"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct field's
// parameter name.
// Priority: forge:"name=..." > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if ft := sf.Tag.Get("forge"); ft != "" {
		if ft == "-" {
			return "-"
		}
		for _, p := range strings.Split(ft, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			if jt[:i] != "" {
				return jt[:i]
			}
			return sf.Name
		}
		return jt
	}
	return sf.Name
}

// tagOptions are the flags carried by a forge struct tag.
type tagOptions struct {
	required bool
	nullable bool
	list     bool
	isMap    bool
	scalar   bool
	itemName string
}

func parseTagOptions(tag string) tagOptions {
	var o tagOptions
	for _, p := range strings.Split(tag, ",") {
		p = strings.TrimSpace(p)
		switch {
		case p == "required":
			o.required = true
		case p == "nullable":
			o.nullable = true
		case p == "list":
			o.list = true
		case p == "map":
			o.isMap = true
		case p == "scalar":
			o.scalar = true
		case strings.HasPrefix(p, "item="):
			o.itemName = strings.TrimPrefix(p, "item=")
		}
	}
	return o
}

var bytesType = reflect.TypeOf([]byte(nil))

// assignTo stores v into dst without coercion. Undefined and nil leave dst at
// its zero value. Accumulated containers ([]any, *Map) are copied element-wise
// into slice and map destinations whose element types accept the values.
func assignTo(param string, dst reflect.Value, v any) error {
	if IsUndefined(v) || v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(dst.Type()) {
		dst.Set(rv)
		return nil
	}
	switch src := v.(type) {
	case []any:
		if dst.Kind() != reflect.Slice {
			break
		}
		out := reflect.MakeSlice(dst.Type(), 0, len(src))
		for i, item := range src {
			ev, err := valueFor(dst.Type().Elem(), item)
			if err != nil {
				return usageError(param, "item %d: %v", i, err)
			}
			out = reflect.Append(out, ev)
		}
		dst.Set(out)
		return nil
	case *Map:
		if dst.Kind() != reflect.Map {
			break
		}
		out := reflect.MakeMapWithSize(dst.Type(), src.Len())
		for p := src.Oldest(); p != nil; p = p.Next() {
			kv, err := valueFor(dst.Type().Key(), p.Key)
			if err != nil {
				return usageError(param, "key %v: %v", p.Key, err)
			}
			vv, err := valueFor(dst.Type().Elem(), p.Value)
			if err != nil {
				return usageError(param, "value for key %v: %v", p.Key, err)
			}
			out.SetMapIndex(kv, vv)
		}
		dst.Set(out)
		return nil
	}
	return usageError(param, "cannot use %T as %s", v, dst.Type())
}

type assignError struct {
	got  any
	want reflect.Type
}

func (e assignError) Error() string {
	return "cannot use " + typeName(e.got) + " as " + e.want.String()
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// valueFor converts a single element without coercion.
func valueFor(t reflect.Type, v any) (reflect.Value, error) {
	if v == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, assignError{got: v, want: t}
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, assignError{got: v, want: t}
	}
	return rv, nil
}
