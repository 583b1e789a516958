package kind_test

import (
	"reflect"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ezcfg/kind"
	"ezcfg/store"
	"ezcfg/value"
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}

	return c
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		kind  kind.Kind
		value any
	}{
		{"boolean", kind.Boolean, true},
		{"byte", kind.Byte, int8(-5)},
		{"unsigned byte", kind.Byte, uint8(200)},
		{"short", kind.Short, int16(-1234)},
		{"int", kind.Int, 25565},
		{"long", kind.Long, int64(1) << 40},
		{"float", kind.Float, float32(0.1)},
		{"double", kind.Double, 2.5},
		{"char", kind.Char, 'é'},
		{"char string", kind.Char, "x"},
		{"string", kind.String, "hello world"},
		{"enum", kind.Enum, mode(1)},
		{"duration", kind.Duration, 90 * time.Second},
		{"uuid", kind.UUID, uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")},
		{"vector", kind.Vector, value.Vec(1.5, 64, -3)},
		{"color", kind.Color, mustHex("#3366cc")},
		{"map", kind.Map, map[string]int{"admin": 3, "guest": 0}},
		{"int list", kind.IntList, []int{1, 2, 3}},
		{"string list", kind.StringList, []string{"a", "b"}},
		{"double list", kind.DoubleList, []float64{0.5, 1}},
		{"char list", kind.CharList, []rune{'a', 'b'}},
		{"map list", kind.MapList, []map[string]any{{"name": "spawn"}}},
		{"list", kind.List, [][]int{{1}, {2, 3}}},
		{"object", kind.Object, struct {
			Name string `yaml:"name"`
		}{Name: "lobby"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewSection()
			v := reflect.ValueOf(tt.value)

			require.NoError(t, tt.kind.Set(s, "a.b", v))
			require.True(t, tt.kind.IsPresent(s, "a.b", v.Type()))

			got, ok := tt.kind.Get(s, "a.b", v.Type())
			require.True(t, ok)
			assert.Equal(t, tt.value, got.Interface())
			assert.True(t, tt.kind.Equal(v, got))
		})
	}
}

func TestRoundTripPointers(t *testing.T) {
	s := store.NewSection()
	port := 8080
	re := regexp.MustCompile(`^[a-z]+$`)

	require.NoError(t, kind.Int.Set(s, "port", reflect.ValueOf(&port)))
	require.NoError(t, kind.Pattern.Set(s, "filter", reflect.ValueOf(re)))

	raw, ok := s.Get("filter")
	require.True(t, ok)
	assert.Equal(t, `^[a-z]+$`, raw)

	got, ok := kind.Int.Get(s, "port", reflect.TypeFor[*int]())
	require.True(t, ok)
	assert.Equal(t, 8080, *got.Interface().(*int))

	got, ok = kind.Pattern.Get(s, "filter", reflect.TypeFor[*regexp.Regexp]())
	require.True(t, ok)
	assert.Equal(t, re.String(), got.Interface().(*regexp.Regexp).String())
	assert.True(t, kind.Pattern.Equal(reflect.ValueOf(re), got))
}

func TestEnumUnknownName(t *testing.T) {
	s := store.NewSection()
	require.NoError(t, s.Set("mode", "BLUE"))

	typ := reflect.TypeFor[mode]()
	_, ok := kind.Enum.Get(s, "mode", typ)
	assert.False(t, ok)

	fallback := reflect.ValueOf(mode(1))
	assert.Equal(t, mode(1), kind.Enum.GetOrDefault(s, "mode", typ, fallback).Interface())

	require.NoError(t, kind.Enum.Set(s, "mode", reflect.ValueOf(mode(0))))
	raw, _ := s.Get("mode")
	assert.Equal(t, "SURVIVAL", raw)
}

func TestListAbsent(t *testing.T) {
	s := store.NewSection()

	for _, k := range []kind.Kind{kind.IntList, kind.StringList, kind.MapList, kind.List} {
		t.Run(k.String(), func(t *testing.T) {
			typ := reflect.TypeFor[[]string]()
			if k == kind.IntList {
				typ = reflect.TypeFor[[]int]()
			}
			if k == kind.MapList {
				typ = reflect.TypeFor[[]map[string]any]()
			}

			_, ok := k.Get(s, "missing", typ)
			assert.False(t, ok)

			fallback := reflect.MakeSlice(typ, 1, 1)
			got := k.GetOrDefault(s, "missing", typ, fallback)
			assert.Equal(t, fallback.Pointer(), got.Pointer())
			assert.Equal(t, fallback.Len(), got.Len())
		})
	}
}

func TestCoercion(t *testing.T) {
	tests := []struct {
		name   string
		stored any
		kind   kind.Kind
		typ    reflect.Type
		want   any // nil means absent
	}{
		{"boolean is strict", "true", kind.Boolean, reflect.TypeFor[bool](), nil},
		{"byte overflow", 300, kind.Byte, reflect.TypeFor[int8](), nil},
		{"negative unsigned", -1, kind.Short, reflect.TypeFor[uint16](), nil},
		{"short from wide int", 1200, kind.Short, reflect.TypeFor[int16](), int16(1200)},
		{"float from int", 3, kind.Float, reflect.TypeFor[float32](), float32(3)},
		{"int from string", "42", kind.Int, reflect.TypeFor[int](), nil},
		{"string from number", 42, kind.String, reflect.TypeFor[string](), "42"},
		{"string from list", []any{"a"}, kind.String, reflect.TypeFor[string](), nil},
		{"char code point", 65, kind.Char, reflect.TypeFor[rune](), 'A'},
		{"char too long", "ab", kind.Char, reflect.TypeFor[rune](), nil},
		{"duration nanoseconds", 1000, kind.Duration, reflect.TypeFor[time.Duration](), time.Microsecond},
		{"duration garbage", "soon", kind.Duration, reflect.TypeFor[time.Duration](), nil},
		{"bad uuid", "nope", kind.UUID, reflect.TypeFor[uuid.UUID](), nil},
		{"bad pattern", "([a-", kind.Pattern, reflect.TypeFor[*regexp.Regexp](), nil},
		{"bad color", "red", kind.Color, reflect.TypeFor[colorful.Color](), nil},
		{"vector missing axis", map[string]any{"x": 1, "y": 2}, kind.Vector, reflect.TypeFor[value.Vector](), nil},
		{"map from scalar", "x", kind.Map, reflect.TypeFor[map[string]any](), nil},
		{"list drops bad elements", []any{1, "x", 3}, kind.IntList, reflect.TypeFor[[]int](), []int{1, 3}},
		{"list from scalar", 1, kind.IntList, reflect.TypeFor[[]int](), nil},
		{"auto resolves", 7, kind.Auto, reflect.TypeFor[int64](), int64(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewSection()
			require.NoError(t, s.Set("v", tt.stored))

			got, ok := tt.kind.Get(s, "v", tt.typ)
			if tt.want == nil {
				assert.False(t, ok)
				return
			}

			require.True(t, ok)
			assert.Equal(t, tt.want, got.Interface())
		})
	}
}

func TestMapFlattensDirectChildrenOnly(t *testing.T) {
	s, err := store.Parse([]byte("ranks:\n  admin: 3\n  nested:\n    deep: 1\n"))
	require.NoError(t, err)

	got, ok := kind.Map.Get(s, "ranks", reflect.TypeFor[map[string]any]())
	require.True(t, ok)
	assert.Equal(t, map[string]any{
		"admin":  3,
		"nested": map[string]any{"deep": 1},
	}, got.Interface())
}

func TestSetNilRemoves(t *testing.T) {
	s := store.NewSection()
	require.NoError(t, s.Set("port", 1))

	require.NoError(t, kind.Int.Set(s, "port", reflect.ValueOf((*int)(nil))))
	assert.False(t, s.Contains("port"))

	require.NoError(t, kind.String.Set(s, "name", reflect.Value{}))
	assert.False(t, s.Contains("name"))
}

func TestSetMismatch(t *testing.T) {
	s := store.NewSection()

	err := kind.Boolean.Set(s, "flag", reflect.ValueOf("yes"))
	assert.ErrorIs(t, err, kind.ErrMismatch)
	assert.False(t, s.Contains("flag"))
}

func TestZero(t *testing.T) {
	tests := []struct {
		kind kind.Kind
		typ  reflect.Type
		want any // nil means no zero value
	}{
		{kind.Boolean, reflect.TypeFor[bool](), false},
		{kind.Int, reflect.TypeFor[*int](), 0},
		{kind.String, reflect.TypeFor[string](), ""},
		{kind.Duration, reflect.TypeFor[time.Duration](), time.Duration(0)},
		{kind.Vector, reflect.TypeFor[value.Vector](), value.Vector{}},
		{kind.Map, reflect.TypeFor[map[string]int](), map[string]int{}},
		{kind.StringList, reflect.TypeFor[[]string](), []string{}},
		{kind.Char, reflect.TypeFor[*rune](), nil},
		{kind.Enum, reflect.TypeFor[mode](), nil},
		{kind.Pattern, reflect.TypeFor[*regexp.Regexp](), nil},
		{kind.UUID, reflect.TypeFor[uuid.UUID](), nil},
		{kind.Object, reflect.TypeFor[struct{}](), nil},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, ok := tt.kind.Zero(tt.typ)
			if tt.want == nil {
				assert.False(t, ok)
				return
			}

			require.True(t, ok)
			assert.Equal(t, tt.want, got.Interface())
		})
	}
}

func TestEqual(t *testing.T) {
	a := regexp.MustCompile(`\d+`)
	b := regexp.MustCompile(`\d+`)

	assert.True(t, kind.Pattern.Equal(reflect.ValueOf(a), reflect.ValueOf(b)))
	assert.False(t, kind.Pattern.Equal(reflect.ValueOf(a), reflect.ValueOf(regexp.MustCompile(`\w+`))))
	assert.True(t, kind.StringList.Equal(reflect.ValueOf([]string{"a"}), reflect.ValueOf([]string{"a"})))
	assert.False(t, kind.Int.Equal(reflect.ValueOf((*int)(nil)), reflect.ValueOf(1)))
	assert.True(t, kind.Int.Equal(reflect.ValueOf((*int)(nil)), reflect.Value{}))

	grey := colorful.Color{R: 0.3, G: 0.3, B: 0.3}
	stored := mustHex(grey.Hex())
	require.NotEqual(t, grey, stored)
	assert.True(t, kind.Color.Equal(reflect.ValueOf(grey), reflect.ValueOf(stored)))
	assert.True(t, kind.Auto.Equal(reflect.ValueOf(&grey), reflect.ValueOf(stored)))
	assert.False(t, kind.Color.Equal(reflect.ValueOf(grey), reflect.ValueOf(mustHex("#ffffff"))))
}
