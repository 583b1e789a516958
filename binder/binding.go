package binder

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"ezcfg/internal/diagnostic"
	"ezcfg/kind"
	"ezcfg/options"
	"ezcfg/store"
)

// Struct tags read by the binder.
const (
	TagPath    = "ezcfg"   // store path; "-" excludes the field
	TagKind    = "kind"    // kind override, see kind.Parse
	TagComment = "comment" // comment lines separated by CommentSeparator

	CommentSeparator = "|"
)

// Binding associates one struct field with one store path.
type Binding struct {
	Field reflect.StructField
	// Index is the field index path from the target struct, through embedded
	// structs.
	Index []int
	// Owner is the struct type that declares the field.
	Owner reflect.Type
	// Kind is the resolved kind, never kind.Auto.
	Kind kind.Kind
	// Override is the kind named by the tag, kind.Auto when none.
	Override kind.Kind
	Path     string
	Comment  []string
	// Inherited is set for fields promoted from an embedded struct.
	Inherited bool
}

// Name returns the qualified field name, Settings.Port.
func (b Binding) Name() string {
	return b.Owner.Name() + "." + b.Field.Name
}

func (b Binding) String() string {
	return fmt.Sprintf("%s -> %s (%s)", b.Name(), b.Path, b.Kind)
}

type fieldKey struct {
	owner reflect.Type
	name  string
}

type walker struct {
	opts  options.Enum
	diags *diagnostic.Diagnostics
	out   []Binding
}

// Bindings derives the bindings of target, a struct or a pointer to one. The
// result is rebuilt on every call.
func Bindings(target any, opts options.Enum) ([]Binding, *diagnostic.Diagnostics) {
	return bindingsOf(reflect.TypeOf(target), opts)
}

func bindingsOf(t reflect.Type, opts options.Enum) ([]Binding, *diagnostic.Diagnostics) {
	w := &walker{
		opts:  opts,
		diags: diagnostic.New(),
	}

	t = kind.Indirect(t)
	if t == nil || t.Kind() != reflect.Struct {
		w.diags.AddError(diagnostic.CodeTarget, fmt.Sprintf("cannot bind %v: not a struct", t), "", "", nil)
		return nil, w.diags
	}

	w.walk(t, nil, false, []reflect.Type{t})

	return w.dedup(), w.diags
}

// dedup keeps one binding per declared field. The shallowest occurrence
// wins, the one Go promotes; at equal depth the first in declaration order.
func (w *walker) dedup() []Binding {
	best := make(map[fieldKey]int)
	for i, b := range w.out {
		key := fieldKey{owner: b.Owner, name: b.Field.Name}
		if j, ok := best[key]; !ok || len(b.Index) < len(w.out[j].Index) {
			best[key] = i
		}
	}

	out := make([]Binding, 0, len(best))
	for i, b := range w.out {
		if best[fieldKey{owner: b.Owner, name: b.Field.Name}] != i {
			w.diags.AddWarning(diagnostic.CodeDuplicate, "field is bound more than once", b.Name(), b.Path, nil)
			continue
		}

		w.derive(&b)
		out = append(out, b)
	}

	return out
}

// walk collects the fields of t in declaration order. Untagged anonymous
// structs are descended into; stack holds the types on the current path.
func (w *walker) walk(t reflect.Type, index []int, inherited bool, stack []reflect.Type) {
	for i := range t.NumField() {
		f := t.Field(i)
		idx := append(slices.Clone(index), i)

		tag, tagged := f.Tag.Lookup(TagPath)
		if tag == "-" {
			continue
		}

		if f.Anonymous && !tagged {
			if et := kind.Indirect(f.Type); et.Kind() == reflect.Struct {
				if !slices.Contains(stack, et) {
					w.walk(et, idx, true, append(stack, et))
				}

				continue
			}
		}

		if !tagged && !(inherited && w.opts.Has(options.ImplicitEmbedded)) {
			continue
		}

		b := Binding{
			Field:     f,
			Index:     idx,
			Owner:     t,
			Path:      tag,
			Inherited: inherited,
		}
		if b.Path == "" {
			b.Path = f.Name
		}

		if !f.IsExported() {
			if tagged {
				w.diags.AddWarning(diagnostic.CodeFieldUnexported, "unexported field cannot be bound", b.Name(), b.Path, nil)
			}

			continue
		}

		if _, err := store.ParsePath(b.Path); err != nil {
			w.diags.AddWarning(diagnostic.CodeInvalidPath, "invalid store path", b.Name(), b.Path, err)
			continue
		}

		w.out = append(w.out, b)
	}
}

func (w *walker) derive(b *Binding) {
	if name, ok := b.Field.Tag.Lookup(TagKind); ok {
		k, err := kind.Parse(name)
		if err != nil {
			w.diags.AddWarning(diagnostic.CodeUnknownKind, "kind override ignored", b.Name(), b.Path, err)
		}
		if !fitsOverride(k, b.Field.Type) {
			w.diags.AddWarning(diagnostic.CodeKindMismatch, "kind override does not fit field type", b.Name(), b.Path,
				fmt.Errorf("%s on %s", k, b.Field.Type))
			k = kind.Auto
		}
		b.Override = k
	}

	b.Kind = b.Override
	if b.Kind == kind.Auto {
		b.Kind = kind.Resolve(b.Field.Type)
	}

	if text, ok := b.Field.Tag.Lookup(TagComment); ok && text != "" {
		b.Comment = strings.Split(text, CommentSeparator)
	}
}

// fitsOverride reports whether k can bind t. CHAR holds a code point, so only
// integer fields take it; numeric kinds only rebind numeric fields.
func fitsOverride(k kind.Kind, t reflect.Type) bool {
	resolved := kind.Resolve(t)
	switch {
	case k == kind.Char:
		return resolved.IsInteger()
	case k == kind.CharList:
		return resolved.Elem().IsInteger()
	case k.IsNumber():
		return resolved.IsNumber()
	case k.IsList() && k.Elem().IsNumber():
		return resolved.Elem().IsNumber()
	}

	return true
}
