package kind

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/lucasb-eyer/go-colorful"

	"ezcfg/store"
)

// ErrMismatch is returned when a runtime value cannot be written as the
// requested kind.
var ErrMismatch = errors.New("value does not match kind")

// Get reads the value at path as type t. It reports false when nothing is
// stored there or the stored value cannot be converted to t; a
// non-convertible value is never an error.
func (k Kind) Get(s *store.Section, path string, t reflect.Type) (reflect.Value, bool) {
	if s == nil || t == nil {
		return reflect.Value{}, false
	}

	v, ok := k.get(s, path, Indirect(t))
	if !ok {
		return reflect.Value{}, false
	}

	return fit(v, t)
}

// GetOrDefault is Get returning fallback itself when the value is absent.
func (k Kind) GetOrDefault(s *store.Section, path string, t reflect.Type, fallback reflect.Value) reflect.Value {
	if v, ok := k.Get(s, path, t); ok {
		return v
	}

	return fallback
}

// IsPresent reports whether Get would produce a value.
func (k Kind) IsPresent(s *store.Section, path string, t reflect.Type) bool {
	_, ok := k.Get(s, path, t)
	return ok
}

// Set writes v at path. A nil or invalid v removes the key instead.
func (k Kind) Set(s *store.Section, path string, v reflect.Value) error {
	v, ok := deref(v)
	if !ok {
		s.Remove(path)
		return nil
	}

	raw, err := k.raw(v)
	if err != nil {
		return fmt.Errorf("failed to write %s as %s: %w", path, k, err)
	}

	if err := s.Set(path, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Zero returns the value written for an absent key when the runtime value
// is nil. Kinds without a meaningful zero report false.
func (k Kind) Zero(t reflect.Type) (reflect.Value, bool) {
	base := Indirect(t)
	if base == nil {
		return reflect.Value{}, false
	}

	switch k {
	case Auto:
		return Resolve(t).Zero(t)
	case Boolean, Byte, Short, Int, Long, Float, Double, String, Duration, Vector:
		return reflect.Zero(base), true
	case Map:
		if base.Kind() == reflect.Map {
			return reflect.MakeMap(base), true
		}
	default:
		if k.IsList() && base.Kind() == reflect.Slice {
			return reflect.MakeSlice(base, 0, 0), true
		}
	}

	return reflect.Value{}, false
}

// Equal compares two non-nil values of the same field. Patterns compare by
// their source text and colors by their hex form, everything else
// structurally.
func (k Kind) Equal(a, b reflect.Value) bool {
	a, aok := deref(a)
	b, bok := deref(b)
	if !aok || !bok {
		return aok == bok
	}

	if k == Pattern || (k == Auto && Resolve(a.Type()) == Pattern) {
		pa, aok := pattern(a)
		pb, bok := pattern(b)
		if aok && bok {
			return pa.String() == pb.String()
		}
	}

	if k == Color || (k == Auto && Resolve(a.Type()) == Color) {
		if a.Type().ConvertibleTo(typeColor) && b.Type().ConvertibleTo(typeColor) {
			return hex(a) == hex(b)
		}
	}

	return reflect.DeepEqual(a.Interface(), b.Interface())
}

func hex(v reflect.Value) string {
	return v.Convert(typeColor).Interface().(colorful.Color).Hex()
}

func (k Kind) get(s *store.Section, path string, t reflect.Type) (reflect.Value, bool) {
	switch {
	case k == Auto:
		return Resolve(t).get(s, path, t)
	case k == Map:
		if !isStringMap(t) || !s.IsSection(path) {
			return reflect.Value{}, false
		}

		return decode(s, path, t)
	case k == List, k == MapList:
		if t.Kind() != reflect.Slice || !s.IsList(path) {
			return reflect.Value{}, false
		}

		return decode(s, path, t)
	case k.IsList():
		return list(k.Elem(), s, path, t)
	case k == Object:
		return decode(s, path, t)
	}

	raw, ok := s.Get(path)
	if !ok {
		return reflect.Value{}, false
	}

	return scalar(k, raw, t)
}

// list converts element by element; elements that do not convert are
// dropped.
func list(elem Kind, s *store.Section, path string, t reflect.Type) (reflect.Value, bool) {
	if t.Kind() != reflect.Slice {
		return reflect.Value{}, false
	}

	raw, ok := s.Get(path)
	if !ok {
		return reflect.Value{}, false
	}

	items, ok := raw.([]any)
	if !ok {
		return reflect.Value{}, false
	}

	et := t.Elem()
	out := reflect.MakeSlice(t, 0, len(items))
	for _, item := range items {
		v, ok := scalar(elem, item, Indirect(et))
		if !ok {
			continue
		}

		if v, ok = fit(v, et); ok {
			out = reflect.Append(out, v)
		}
	}

	return out, true
}

func decode(s *store.Section, path string, t reflect.Type) (reflect.Value, bool) {
	p := reflect.New(t)
	if err := s.Decode(path, p.Interface()); err != nil {
		return reflect.Value{}, false
	}

	return p.Elem(), true
}

// raw turns a concrete runtime value into what the store encodes for k.
func (k Kind) raw(v reflect.Value) (any, error) {
	switch k {
	case Auto:
		return Resolve(v.Type()).raw(v)
	case Map, List, MapList, Object:
		return v.Interface(), nil
	}

	if !k.IsList() {
		return rawScalar(k, v)
	}

	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: %s is not a list", ErrMismatch, v.Type())
	}

	elem := k.Elem()
	items := make([]any, 0, v.Len())
	for i := range v.Len() {
		e, ok := deref(v.Index(i))
		if !ok {
			continue
		}

		item, err := rawScalar(elem, e)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		items = append(items, item)
	}

	return items, nil
}
