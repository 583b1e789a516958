package kind

import (
	"reflect"
)

// Resolve returns the kind for a field of type t. Pointers are looked
// through, so *int resolves like int. For slices the element type is
// matched against the list kinds; a slice no typed list claims resolves to
// LIST. Anything else unmatched resolves to OBJECT.
func Resolve(t reflect.Type) Kind {
	if t == nil {
		return Object
	}

	t = Indirect(t)

	if t.Kind() == reflect.Slice {
		elem := Indirect(t.Elem())
		for _, d := range catalog {
			if d.List && d.Match != nil && d.Match(elem) {
				return d.Kind
			}
		}

		return List
	}

	for _, d := range catalog {
		if !d.List && d.Match != nil && d.Match(t) {
			return d.Kind
		}
	}

	return Object
}

// Indirect strips every pointer level from t.
func Indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}

// fit adapts v to type t: wrapping it in pointers, unwrapping pointers,
// boxing into an interface or converting between named types of the same
// reflect kind.
func fit(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	switch {
	case !v.IsValid():
		return reflect.Value{}, false
	case v.Type() == t:
		return v, true
	case t.Kind() == reflect.Pointer:
		e, ok := fit(v, t.Elem())
		if !ok {
			return reflect.Value{}, false
		}

		p := reflect.New(t.Elem())
		p.Elem().Set(e)

		return p, true
	case v.Kind() == reflect.Pointer:
		if v.IsNil() {
			return reflect.Value{}, false
		}

		return fit(v.Elem(), t)
	case t.Kind() == reflect.Interface:
		if !v.Type().Implements(t) {
			return reflect.Value{}, false
		}

		iv := reflect.New(t).Elem()
		iv.Set(v)

		return iv, true
	case v.Kind() == t.Kind() && v.Type().ConvertibleTo(t):
		return v.Convert(t), true
	}

	return reflect.Value{}, false
}

// deref follows pointers and interfaces down to a concrete value. It
// reports false for nil.
func deref(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}

	return v, v.IsValid()
}
