package forge

import (
	"fmt"
	"reflect"
)

var (
	argsType  = reflect.TypeOf(Args(nil))
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// adaptConstructor turns an arbitrary function into a Constructor[any].
// Accepted shapes:
//
//	Constructor[any] / func(Args) (any, error)
//	func(Args) R            func(Args) (R, error)
//	func(...E) R            func(...E) (R, error)
//	func(P1, ..., Pn) R     func(P1, ..., Pn) (R, error)   where n == params
func adaptConstructor(ctor any, params int) (Constructor[any], error) {
	switch c := ctor.(type) {
	case nil:
		return nil, configError(reasonConstructor)
	case Constructor[any]:
		if c == nil {
			return nil, configError(reasonConstructor)
		}
		return c, nil
	case func(Args) (any, error):
		if c == nil {
			return nil, configError(reasonConstructor)
		}
		return c, nil
	}

	fn := reflect.ValueOf(ctor)
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return nil, configError(reasonConstructor)
	}
	ft := fn.Type()
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return nil, configError("constructor must return a value and an optional error")
	}

	var bind func(Args) ([]reflect.Value, error)
	switch {
	case ft.NumIn() == 1 && !ft.IsVariadic() && ft.In(0) == argsType:
		bind = func(args Args) ([]reflect.Value, error) {
			return []reflect.Value{reflect.ValueOf(args)}, nil
		}
	case ft.NumIn() == 1 && ft.IsVariadic():
		elem := ft.In(0).Elem()
		bind = func(args Args) ([]reflect.Value, error) {
			in := make([]reflect.Value, len(args))
			for i, a := range args {
				v, err := paramValue(i, elem, a)
				if err != nil {
					return nil, err
				}
				in[i] = v
			}
			return in, nil
		}
	case !ft.IsVariadic() && ft.NumIn() == params:
		bind = func(args Args) ([]reflect.Value, error) {
			in := make([]reflect.Value, len(args))
			for i, a := range args {
				v, err := paramValue(i, ft.In(i), a)
				if err != nil {
					return nil, err
				}
				in[i] = v
			}
			return in, nil
		}
	default:
		return nil, configError(fmt.Sprintf("constructor takes %d parameters, have %d parameter specifications", ft.NumIn(), params))
	}

	return func(args Args) (any, error) {
		in, err := bind(args)
		if err != nil {
			return nil, err
		}
		out := fn.Call(in)
		var res any
		if out[0].IsValid() {
			res = out[0].Interface()
		}
		if len(out) == 2 && !out[1].IsNil() {
			return res, out[1].Interface().(error)
		}
		return res, nil
	}, nil
}

// paramValue prepares the i-th positional argument for a parameter of type t.
// Empty-interface parameters receive the value verbatim, Undefined included;
// typed parameters follow assignTo.
func paramValue(i int, t reflect.Type, v any) (reflect.Value, error) {
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 {
		if v == nil {
			return reflect.Zero(t), nil
		}
		return reflect.ValueOf(v), nil
	}
	dst := reflect.New(t).Elem()
	if err := assignTo(fmt.Sprintf("#%d", i), dst, v); err != nil {
		return reflect.Value{}, err
	}
	return dst, nil
}
