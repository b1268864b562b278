package forge

import (
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ParamSpec declares one buildable field.
type ParamSpec struct {
	Name string `json:"name" yaml:"name" jsonschema:"minLength=1,description=Field name; setter is set<Name>"`
	// ItemName names the accumulator of a list or map field (add<ItemName>).
	// When empty the accumulator is named after Name.
	ItemName   string `json:"itemName,omitempty" yaml:"itemName,omitempty" jsonschema:"description=Accumulator name for list/map fields"`
	IsRequired bool   `json:"isRequired,omitempty" yaml:"isRequired,omitempty"`
	// IsNullable is only consulted for required fields.
	IsNullable bool `json:"isNullable,omitempty" yaml:"isNullable,omitempty"`
	IsList     bool `json:"isList,omitempty" yaml:"isList,omitempty"`
	IsMap      bool `json:"isMap,omitempty" yaml:"isMap,omitempty"`
}

// Map is the representation of accumulated map fields. Keys keep the order
// in which they were first inserted.
type Map = orderedmap.OrderedMap[any, any]

// NewMap returns an empty Map.
func NewMap() *Map { return orderedmap.New[any, any]() }

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined is the positional placeholder for a field that was never set.
// It is distinct from nil, which is the null value.
var Undefined any = undefined{}

// IsUndefined reports whether v is the Undefined placeholder.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// IsNull reports whether v is null: an untyped nil or a typed nil of a
// nilable kind.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Args is the positional argument list passed to a Constructor, one entry per
// ParamSpec in declaration order.
type Args []any

// Defined reports whether the i-th field was set or accumulated.
func (a Args) Defined(i int) bool {
	return i >= 0 && i < len(a) && !IsUndefined(a[i])
}

// Value returns the i-th argument, mapping Undefined and out-of-range to nil.
func (a Args) Value(i int) any {
	if !a.Defined(i) {
		return nil
	}
	return a[i]
}

// Constructor produces the target value from positional arguments. Its result
// and error are returned by Build unmodified.
type Constructor[T any] func(args Args) (T, error)
