package forge

import (
	"go.uber.org/zap"
)

// Builder accumulates field values for one Build. The first failing call is
// recorded; subsequent calls are no-ops and Build returns that error.
//
// A Builder is not safe for concurrent use.
type Builder[T any] struct {
	f      *Factory[T]
	values map[string]any
	// owned marks containers created or copied by accumulators. Containers
	// supplied through setters are copied before the first append.
	owned map[string]bool
	err   error
}

// Call invokes a synthesized method by name, e.g. Call("setHost", "h") or
// Call("addLabel", "k", "v").
func (b *Builder[T]) Call(name string, args ...any) *Builder[T] {
	if b.err != nil {
		return b
	}
	m, ok := b.f.methods[name]
	if !ok {
		b.err = usageError("", "no such method %q", name)
		return b
	}
	if len(args) != m.kind.arity() {
		b.err = usageError(b.f.params[m.param].Name, "%s takes %d argument(s), got %d", name, m.kind.arity(), len(args))
		return b
	}
	b.err = b.apply(m, args)
	return b
}

// Set stores v as the value of field, replacing anything stored before.
func (b *Builder[T]) Set(field string, v any) *Builder[T] {
	return b.callField(field, methodSet, v)
}

// Add appends v to the list field.
func (b *Builder[T]) Add(field string, v any) *Builder[T] {
	return b.callField(field, methodAdd, v)
}

// Put stores v under key in the map field.
func (b *Builder[T]) Put(field string, key, v any) *Builder[T] {
	return b.callField(field, methodPut, key, v)
}

func (b *Builder[T]) callField(field string, kind methodKind, args ...any) *Builder[T] {
	if b.err != nil {
		return b
	}
	i, ok := b.f.fields[field]
	if !ok {
		b.err = usageError(field, "no such field")
		return b
	}
	ps := b.f.params[i]
	switch {
	case kind == methodAdd && !ps.IsList:
		b.err = usageError(field, "not a list field")
		return b
	case kind == methodPut && !ps.IsMap:
		b.err = usageError(field, "not a map field")
		return b
	}
	b.err = b.apply(method{kind: kind, param: i}, args)
	return b
}

func (b *Builder[T]) apply(m method, args []any) error {
	name := b.f.params[m.param].Name
	switch m.kind {
	case methodAdd:
		return b.appendItem(name, args[0])
	case methodPut:
		return b.putEntry(name, args[0], args[1])
	default:
		b.values[name] = args[0]
		delete(b.owned, name)
		return nil
	}
}

// Err returns the first error recorded by a chained call.
func (b *Builder[T]) Err() error { return b.err }

// Build checks required fields, assembles the positional arguments in
// declaration order (Undefined for fields never touched) and returns the
// constructor's result unmodified.
func (b *Builder[T]) Build() (T, error) {
	var zero T
	if b.err != nil {
		return zero, b.err
	}
	params := b.f.params
	for i, ps := range params {
		if !ps.IsRequired {
			continue
		}
		v, present := b.values[ps.Name]
		if !present {
			b.f.log.Debug("forge: build rejected", zap.String("param", ps.Name), zap.String("reason", "missing"))
			return zero, &Error{Kind: KindMissingArgument, Param: ps.Name, Index: i}
		}
		if !ps.IsNullable && IsNull(v) {
			b.f.log.Debug("forge: build rejected", zap.String("param", ps.Name), zap.String("reason", "null"))
			return zero, &Error{Kind: KindNullArgument, Param: ps.Name, Index: i}
		}
	}

	args := make(Args, len(params))
	for i, ps := range params {
		v, present := b.values[ps.Name]
		if !present {
			args[i] = Undefined
			continue
		}
		args[i] = v
	}
	// containers now belong to the result
	clear(b.owned)

	b.f.log.Debug("forge: build", zap.Int("args", len(args)))
	return b.f.ctor(args)
}
