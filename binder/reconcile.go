package binder

import (
	"errors"
	"fmt"
	"reflect"

	"ezcfg/internal/diagnostic"
	"ezcfg/options"
	"ezcfg/store"
)

// ErrTarget is returned when the target of a pass is not a non-nil pointer
// to a struct.
var ErrTarget = errors.New("target must be a non-nil pointer to a struct")

func root(target any) (reflect.Value, error) {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w, got %T", ErrTarget, target)
	}

	return v.Elem(), nil
}

// field walks index from the root struct. With alloc set, nil embedded
// pointers on the way are allocated.
func field(root reflect.Value, index []int, alloc bool) (reflect.Value, error) {
	if !alloc {
		return root.FieldByIndexErr(index)
	}

	v := root
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, fmt.Errorf("cannot allocate embedded %s", v.Type().Elem())
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}

	return v, nil
}

// absent reports whether a runtime value carries nothing to store.
func absent(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return v.IsNil()
	}

	return false
}

// LoadStore pulls every bound field of target from s. Fields whose value is
// missing from s, or stored in a shape their kind cannot read, are written
// back to s from the runtime value instead. It reports whether s changed.
func LoadStore(target any, s *store.Section, opts options.Enum) (bool, *diagnostic.Diagnostics, error) {
	rv, err := root(target)
	if err != nil {
		return false, nil, err
	}

	bindings, diags := bindingsOf(rv.Type(), opts)

	changed := false
	for _, b := range bindings {
		fv, err := field(rv, b.Index, true)
		if err != nil {
			diags.AddWarning(diagnostic.CodeFieldRead, "cannot reach field", b.Name(), b.Path, err)
			continue
		}

		got, ok := b.Kind.Get(s, b.Path, b.Field.Type)
		if !ok {
			wrote, err := backfill(s, b, fv)
			if err != nil {
				diags.AddWarning(diagnostic.CodeStoreWrite, "cannot write default", b.Name(), b.Path, err)
				continue
			}

			if wrote {
				diags.AddInfo(diagnostic.CodeBackfill, "default written", b.Name(), b.Path)
			}

			changed = comment(s, b, wrote, opts, diags) || wrote || changed
			continue
		}

		if err := assign(fv, got); err != nil {
			diags.AddWarning(diagnostic.CodeFieldAssign, "field reset to zero", b.Name(), b.Path, err)
		}

		changed = comment(s, b, false, opts, diags) || changed
	}

	return changed, diags, nil
}

// backfill writes the runtime value of a field whose store value is absent.
// A nil runtime value writes the kind's zero value, or removes the key when
// the kind has none.
func backfill(s *store.Section, b Binding, fv reflect.Value) (bool, error) {
	v := fv
	if absent(fv) {
		zero, ok := b.Kind.Zero(b.Field.Type)
		if !ok {
			return s.Remove(b.Path), nil
		}
		v = zero
	}

	if err := b.Kind.Set(s, b.Path, v); err != nil {
		return false, err
	}

	return true, nil
}

// assign stores got into fv. A value of the wrong type resets the field to
// its zero value.
func assign(fv reflect.Value, got reflect.Value) error {
	if !fv.CanSet() {
		return fmt.Errorf("field of type %s is not settable", fv.Type())
	}

	if !got.Type().AssignableTo(fv.Type()) {
		fv.SetZero()
		return fmt.Errorf("cannot assign %s to %s", got.Type(), fv.Type())
	}

	fv.Set(got)

	return nil
}

// comment renders the binding's comment lines on its key when the key was
// just written or carries different lines.
func comment(s *store.Section, b Binding, wrote bool, opts options.Enum, diags *diagnostic.Diagnostics) bool {
	if !opts.Has(options.WriteComments) || len(b.Comment) == 0 || !s.Contains(b.Path) {
		return false
	}

	if !wrote && s.CommentMatches(b.Path, b.Comment) {
		return false
	}

	if err := s.SetComment(b.Path, b.Comment); err != nil {
		diags.AddWarning(diagnostic.CodeComment, "cannot write comment", b.Name(), b.Path, err)
		return false
	}

	return true
}

// SaveStore writes every bound field of target whose runtime value differs
// from what s holds. A nil field against a stored value removes the key. It
// reports whether s changed.
func SaveStore(target any, s *store.Section, opts options.Enum) (bool, *diagnostic.Diagnostics, error) {
	rv, err := root(target)
	if err != nil {
		return false, nil, err
	}

	bindings, diags := bindingsOf(rv.Type(), opts)

	changed := false
	for _, b := range bindings {
		fv, err := field(rv, b.Index, false)
		if err != nil {
			diags.AddWarning(diagnostic.CodeFieldRead, "cannot reach field", b.Name(), b.Path, err)
			continue
		}

		got, stored := b.Kind.Get(s, b.Path, b.Field.Type)
		has := !absent(fv)
		if has == stored && (!has || b.Kind.Equal(fv, got)) {
			changed = comment(s, b, false, opts, diags) || changed
			continue
		}

		if has {
			if err := b.Kind.Set(s, b.Path, fv); err != nil {
				diags.AddWarning(diagnostic.CodeStoreWrite, "cannot write value", b.Name(), b.Path, err)
				continue
			}
		} else {
			s.Remove(b.Path)
		}

		diags.AddInfo(diagnostic.CodeUpdate, "value updated", b.Name(), b.Path)
		comment(s, b, true, opts, diags)
		changed = true
	}

	return changed, diags, nil
}

// CopyFrom copies every bound field of source into target. Both must point
// to the same struct type; source may also be a struct value.
func CopyFrom(target, source any, opts options.Enum) (*diagnostic.Diagnostics, error) {
	dst, err := root(target)
	if err != nil {
		return nil, err
	}

	src := reflect.ValueOf(source)
	if src.Kind() == reflect.Pointer && !src.IsNil() {
		src = src.Elem()
	}

	if !src.IsValid() || src.Type() != dst.Type() {
		return nil, fmt.Errorf("cannot copy %T into %s", source, dst.Type())
	}

	bindings, diags := bindingsOf(dst.Type(), opts)
	for _, b := range bindings {
		from, err := field(src, b.Index, false)
		if err != nil {
			diags.AddWarning(diagnostic.CodeCopy, "cannot read source field", b.Name(), b.Path, err)
			continue
		}

		to, err := field(dst, b.Index, true)
		if err != nil {
			diags.AddWarning(diagnostic.CodeCopy, "cannot reach target field", b.Name(), b.Path, err)
			continue
		}

		to.Set(from)
	}

	return diags, nil
}
