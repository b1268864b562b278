package forge

import (
	"reflect"
	"slices"
)

// appendItem implements add<Item> on list fields. An untouched or untyped-nil
// field starts a fresh []any; a slice supplied through the setter keeps its
// element type and is copied before the first append.
func (b *Builder[T]) appendItem(name string, v any) error {
	cur, present := b.values[name]
	if !present || cur == nil {
		b.values[name] = []any{v}
		b.owned[name] = true
		return nil
	}
	if s, ok := cur.([]any); ok {
		if !b.owned[name] {
			s = slices.Clone(s)
			b.owned[name] = true
		}
		b.values[name] = append(s, v)
		return nil
	}

	rv := reflect.ValueOf(cur)
	if rv.Kind() != reflect.Slice {
		return usageError(name, "cannot add to a value of type %T", cur)
	}
	ev, err := valueFor(rv.Type().Elem(), v)
	if err != nil {
		return usageError(name, "%v", err)
	}
	if !b.owned[name] {
		cp := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len()+1)
		reflect.Copy(cp, rv)
		rv = cp
		b.owned[name] = true
	}
	b.values[name] = reflect.Append(rv, ev).Interface()
	return nil
}

// putEntry implements add<Item>(key, value) on map fields. Keys keep the
// position of their first insertion; the last value per key wins. Keys are
// checked by their dynamic content, so a struct holding a slice in an
// interface field is rejected rather than panicking on insert.
func (b *Builder[T]) putEntry(name string, key, v any) error {
	if key != nil && !reflect.ValueOf(key).Comparable() {
		return usageError(name, "map key of type %T is not comparable", key)
	}
	cur, present := b.values[name]
	if !present || cur == nil {
		m := NewMap()
		m.Set(key, v)
		b.values[name] = m
		b.owned[name] = true
		return nil
	}
	if m, ok := cur.(*Map); ok {
		switch {
		case m == nil:
			m = NewMap()
			b.owned[name] = true
		case !b.owned[name]:
			m = cloneMap(m)
			b.owned[name] = true
		}
		m.Set(key, v)
		b.values[name] = m
		return nil
	}

	rv := reflect.ValueOf(cur)
	if rv.Kind() != reflect.Map {
		return usageError(name, "cannot add to a value of type %T", cur)
	}
	kv, err := valueFor(rv.Type().Key(), key)
	if err != nil {
		return usageError(name, "key: %v", err)
	}
	vv, err := valueFor(rv.Type().Elem(), v)
	if err != nil {
		return usageError(name, "value: %v", err)
	}
	if !b.owned[name] {
		cp := reflect.MakeMapWithSize(rv.Type(), rv.Len()+1)
		iter := rv.MapRange()
		for iter.Next() {
			cp.SetMapIndex(iter.Key(), iter.Value())
		}
		rv = cp
		b.owned[name] = true
	}
	rv.SetMapIndex(kv, vv)
	b.values[name] = rv.Interface()
	return nil
}

func cloneMap(m *Map) *Map {
	out := NewMap()
	for p := m.Oldest(); p != nil; p = p.Next() {
		out.Set(p.Key, p.Value)
	}
	return out
}
