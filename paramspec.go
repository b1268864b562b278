package forge

import (
	"math"
	"reflect"
)

// Attribute keys of an untyped parameter specification entry.
const (
	keyName       = "name"
	keyItemName   = "itemName"
	keyIsRequired = "isRequired"
	keyIsNullable = "isNullable"
	keyIsList     = "isList"
	keyIsMap      = "isMap"
)

const (
	reasonSequence    = "expected a sequence of parameter specifications"
	reasonConstructor = "expected a constructor function"
	reasonRecord      = "must be a structured record"
	reasonName        = "requires a string name"
	reasonItemName    = "itemName must be a string"
	reasonExclusive   = "isList and isMap are mutually exclusive"
)

// ParseSpecs validates untyped specification entries (as produced by the
// decoders in source/) and returns them as typed ParamSpecs in declaration
// order. raw must be a slice or array.
func ParseSpecs(raw any) ([]ParamSpec, error) {
	seq, ok := sequenceOf(raw)
	if !ok {
		return nil, configError(reasonSequence)
	}
	return parseEntries(seq)
}

func sequenceOf(raw any) (reflect.Value, bool) {
	if raw == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv, true
	}
	return rv, false
}

func parseEntries(seq reflect.Value) ([]ParamSpec, error) {
	out := make([]ParamSpec, 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		ps, err := specFromEntry(i, seq.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out = append(out, ps)
	}
	return out, nil
}

func specFromEntry(i int, entry any) (ParamSpec, error) {
	switch e := entry.(type) {
	case ParamSpec:
		return checkSpec(i, e)
	case *ParamSpec:
		if e == nil {
			return ParamSpec{}, specError(i, "", reasonRecord)
		}
		return checkSpec(i, *e)
	}

	attrs, ok := recordAttrs(entry)
	if !ok {
		return ParamSpec{}, specError(i, "", reasonRecord)
	}
	name, _ := attrs[keyName].(string)
	if name == "" {
		return ParamSpec{}, specError(i, "", reasonName)
	}
	ps := ParamSpec{
		Name:       name,
		IsRequired: truthy(attrs[keyIsRequired]),
		IsNullable: truthy(attrs[keyIsNullable]),
		IsList:     truthy(attrs[keyIsList]),
		IsMap:      truthy(attrs[keyIsMap]),
	}
	if v, present := attrs[keyItemName]; present && v != nil {
		s, ok := v.(string)
		if !ok {
			return ParamSpec{}, specError(i, name, reasonItemName)
		}
		ps.ItemName = s
	}
	return checkSpec(i, ps)
}

func checkSpec(i int, ps ParamSpec) (ParamSpec, error) {
	if ps.Name == "" {
		return ParamSpec{}, specError(i, "", reasonName)
	}
	if ps.IsList && ps.IsMap {
		return ParamSpec{}, specError(i, ps.Name, reasonExclusive)
	}
	return ps, nil
}

// recordAttrs reads the attributes of a structured record: a map keyed by
// strings or a struct (or non-nil pointer to one). Anything else is not a
// record.
func recordAttrs(entry any) (map[string]any, bool) {
	if entry == nil {
		return nil, false
	}
	rv := reflect.ValueOf(entry)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		attrs := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key()
			if k.Kind() == reflect.Interface {
				k = k.Elem()
			}
			if k.Kind() != reflect.String {
				continue
			}
			attrs[k.String()] = iter.Value().Interface()
		}
		return attrs, true
	case reflect.Struct:
		rt := rv.Type()
		attrs := make(map[string]any, rt.NumField())
		for j := 0; j < rt.NumField(); j++ {
			sf := rt.Field(j)
			if !sf.IsExported() {
				continue
			}
			key := ResolveStructKey(sf)
			if key == "-" {
				continue
			}
			if key == sf.Name {
				// untagged Go field names map onto the camelCase attribute keys
				key = lowerFirst(key)
			}
			attrs[key] = rv.Field(j).Interface()
		}
		return attrs, true
	}
	return nil, false
}

// truthy: false, nil, zero numbers and empty strings are falsy; every other
// value is truthy.
func truthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return !rv.IsZero()
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
