package forge

import (
	"unicode"
	"unicode/utf8"
)

type methodKind int

const (
	methodSet methodKind = iota // set<Name>(value)
	methodAdd                   // add<Item>(value) on list fields
	methodPut                   // add<Item>(key, value) on map fields
)

func (k methodKind) arity() int {
	if k == methodPut {
		return 2
	}
	return 1
}

// method is one entry of a factory's dispatch table.
type method struct {
	name  string
	kind  methodKind
	param int // index into Factory.params
}

// SetterName returns the name of the setter synthesized for ps.
func SetterName(ps ParamSpec) string { return "set" + upperFirst(ps.Name) }

// AccumulatorName returns the name of the accumulator synthesized for a list
// or map field, or "" when ps is a scalar field.
func AccumulatorName(ps ParamSpec) string {
	if !ps.IsList && !ps.IsMap {
		return ""
	}
	n := ps.ItemName
	if n == "" {
		n = ps.Name
	}
	return "add" + upperFirst(n)
}

// buildMethods synthesizes the dispatch table in declaration order.
func buildMethods(params []ParamSpec) (map[string]method, []string, error) {
	table := make(map[string]method, len(params)*2)
	order := make([]string, 0, len(params)*2)
	define := func(i int, m method) error {
		if _, dup := table[m.name]; dup {
			return specError(i, params[i].Name, "method "+m.name+" is already defined")
		}
		table[m.name] = m
		order = append(order, m.name)
		return nil
	}
	for i, ps := range params {
		if err := define(i, method{name: SetterName(ps), kind: methodSet, param: i}); err != nil {
			return nil, nil, err
		}
		switch {
		case ps.IsList:
			if err := define(i, method{name: AccumulatorName(ps), kind: methodAdd, param: i}); err != nil {
				return nil, nil, err
			}
		case ps.IsMap:
			if err := define(i, method{name: AccumulatorName(ps), kind: methodPut, param: i}); err != nil {
				return nil, nil, err
			}
		}
	}
	return table, order, nil
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}
