package kind

import (
	"encoding"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cast"

	"ezcfg/utils"
	"ezcfg/value"
)

var invalid = reflect.Value{}

// scalar converts a raw store value to type t for the non-list kind k.
func scalar(k Kind, raw any, t reflect.Type) (reflect.Value, bool) {
	switch k {
	case Boolean:
		b, ok := raw.(bool)
		if !ok {
			return invalid, false
		}

		return fit(reflect.ValueOf(b), t)
	case Byte, Short, Int, Long, Float, Double:
		return number(raw, t)
	case Char:
		return char(raw, t)
	case String:
		s, ok := text(raw)
		if !ok {
			return invalid, false
		}

		return fit(reflect.ValueOf(s), t)
	case Enum:
		return enum(raw, t)
	case Duration:
		switch raw.(type) {
		case string, int, int64, uint64:
		default:
			return invalid, false
		}

		d, err := cast.ToDurationE(raw)
		if err != nil {
			return invalid, false
		}

		return fit(reflect.ValueOf(d), t)
	case UUID:
		s, ok := raw.(string)
		if !ok {
			return invalid, false
		}

		id, err := uuid.Parse(s)
		if err != nil {
			return invalid, false
		}

		return fit(reflect.ValueOf(id), t)
	case Pattern:
		s, ok := raw.(string)
		if !ok {
			return invalid, false
		}

		re, err := regexp.Compile(s)
		if err != nil {
			return invalid, false
		}

		return fit(reflect.ValueOf(re), t)
	case Vector:
		return vector(raw, t)
	case Color:
		s, ok := raw.(string)
		if !ok {
			return invalid, false
		}

		c, err := colorful.Hex(s)
		if err != nil {
			return invalid, false
		}

		return fit(reflect.ValueOf(c), t)
	case Map:
		m, ok := raw.(map[string]any)
		if !ok || !isStringMap(t) {
			return invalid, false
		}

		return fit(reflect.ValueOf(m), t)
	}

	return invalid, false
}

func isNumeric(raw any) bool {
	switch raw.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	}

	return false
}

// number stores raw into a fresh value of t. Values outside the range of t
// are absent rather than truncated.
func number(raw any, t reflect.Type) (reflect.Value, bool) {
	if !isNumeric(raw) {
		return invalid, false
	}

	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := cast.ToInt64E(raw)
		if err != nil || v.OverflowInt(n) {
			return invalid, false
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := cast.ToUint64E(raw)
		if err != nil || v.OverflowUint(n) {
			return invalid, false
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(raw)
		if err != nil || v.OverflowFloat(f) {
			return invalid, false
		}
		v.SetFloat(f)
	default:
		return invalid, false
	}

	return v, true
}

// char accepts a one-character string or a code point.
func char(raw any, t reflect.Type) (reflect.Value, bool) {
	var r rune
	switch x := raw.(type) {
	case string:
		if utf8.RuneCountInString(x) != 1 {
			return invalid, false
		}
		r, _ = utf8.DecodeRuneInString(x)
	case int:
		if !utils.IsCodePoint(x) {
			return invalid, false
		}
		r = rune(x)
	default:
		return invalid, false
	}

	if t.Kind() == reflect.String {
		return fit(reflect.ValueOf(string(r)), t)
	}

	return number(int(r), t)
}

// text formats scalar raw values as strings; collections are rejected.
func text(raw any) (string, bool) {
	switch raw.(type) {
	case string, bool, int, int64, uint64, float64:
		s, err := cast.ToStringE(raw)
		return s, err == nil
	}

	return "", false
}

// enum parses a constant name through the type's UnmarshalText. Unknown
// names are absent.
func enum(raw any, t reflect.Type) (reflect.Value, bool) {
	s, ok := text(raw)
	if !ok || !reflect.PointerTo(t).Implements(typeUnmarshaler) {
		return invalid, false
	}

	p := reflect.New(t)
	if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
		return invalid, false
	}

	return p.Elem(), true
}

func vector(raw any, t reflect.Type) (reflect.Value, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return invalid, false
	}

	var xyz [3]float64
	for i, key := range []string{"x", "y", "z"} {
		c, ok := m[key]
		if !ok || !isNumeric(c) {
			return invalid, false
		}

		f, err := cast.ToFloat64E(c)
		if err != nil {
			return invalid, false
		}
		xyz[i] = f
	}

	return fit(reflect.ValueOf(value.Vec(xyz[0], xyz[1], xyz[2])), t)
}

func mismatch(k Kind, v reflect.Value) error {
	return fmt.Errorf("%w: cannot store %s as %s", ErrMismatch, v.Type(), k)
}

// rawScalar is the inverse of scalar for a concrete runtime value.
func rawScalar(k Kind, v reflect.Value) (any, error) {
	switch k {
	case Auto:
		return Resolve(v.Type()).raw(v)
	case Boolean:
		if v.Kind() == reflect.Bool {
			return v.Bool(), nil
		}
	case Byte, Short, Int, Long:
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return v.Int(), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return v.Uint(), nil
		}
	case Float, Double:
		if v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64 {
			// float32 fields are written with their own shortest form,
			// 0.1 rather than 0.10000000149011612.
			f, err := strconv.ParseFloat(strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits()), 64)
			if err != nil {
				return nil, err
			}

			return f, nil
		}
	case Char:
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return string(rune(v.Int())), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return string(rune(v.Uint())), nil
		case reflect.String:
			if utf8.RuneCountInString(v.String()) == 1 {
				return v.String(), nil
			}
		}
	case String:
		if v.Kind() == reflect.String {
			return v.String(), nil
		}
	case Enum:
		if m, ok := v.Interface().(encoding.TextMarshaler); ok {
			b, err := m.MarshalText()
			if err != nil {
				return nil, err
			}

			return string(b), nil
		}
	case Duration:
		if v.Kind() == reflect.Int64 {
			return time.Duration(v.Int()).String(), nil
		}
	case UUID:
		if v.Type().ConvertibleTo(typeUUID) {
			return v.Convert(typeUUID).Interface().(uuid.UUID).String(), nil
		}
	case Pattern:
		if re, ok := pattern(v); ok {
			return re.String(), nil
		}
	case Vector:
		if v.Type().ConvertibleTo(typeVector) {
			return v.Convert(typeVector).Interface().(value.Vector).Map(), nil
		}
	case Color:
		if v.Type().ConvertibleTo(typeColor) {
			return v.Convert(typeColor).Interface().(colorful.Color).Hex(), nil
		}
	case Map:
		if v.Kind() == reflect.Map {
			return v.Interface(), nil
		}
	}

	return nil, mismatch(k, v)
}

// pattern returns v as a *regexp.Regexp, reusing v's address when it has
// one.
func pattern(v reflect.Value) (*regexp.Regexp, bool) {
	if v.Type() != typePattern {
		return nil, false
	}

	if v.CanAddr() {
		return v.Addr().Interface().(*regexp.Regexp), true
	}

	p := reflect.New(typePattern)
	p.Elem().Set(v)

	return p.Interface().(*regexp.Regexp), true
}
