package kind

import (
	"encoding"
	"reflect"
	"regexp"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"

	"ezcfg/value"
)

// Descriptor binds a kind to the Go types it is resolved for.
type Descriptor struct {
	Kind Kind
	List bool // matches slice element types instead of the field type

	// Match reports whether t (pointers already stripped) belongs to the
	// kind. A nil Match never matches; such kinds are only reachable through
	// an explicit override or as a fallback.
	Match func(t reflect.Type) bool
}

var (
	typeDuration    = reflect.TypeFor[time.Duration]()
	typeUUID        = reflect.TypeFor[uuid.UUID]()
	typePattern     = reflect.TypeFor[regexp.Regexp]()
	typeVector      = reflect.TypeFor[value.Vector]()
	typeColor       = reflect.TypeFor[colorful.Color]()
	typeMarshaler   = reflect.TypeFor[encoding.TextMarshaler]()
	typeUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// catalog is scanned in order, and the order matters: the special types
// come first because a named int enum or time.Duration would otherwise be
// taken by a primitive kind, and the typed lists precede LIST.
var catalog = []Descriptor{
	{Kind: Duration, Match: is(typeDuration)},
	{Kind: UUID, Match: is(typeUUID)},
	{Kind: Pattern, Match: is(typePattern)},
	{Kind: Vector, Match: is(typeVector)},
	{Kind: Color, Match: is(typeColor)},
	{Kind: Enum, Match: isEnum},
	{Kind: Boolean, Match: plain(reflect.Bool)},
	{Kind: Byte, Match: plain(reflect.Int8, reflect.Uint8)},
	{Kind: Short, Match: plain(reflect.Int16, reflect.Uint16)},
	{Kind: Int, Match: plain(reflect.Int, reflect.Int32, reflect.Uint, reflect.Uint32)},
	{Kind: Long, Match: plain(reflect.Int64, reflect.Uint64)},
	{Kind: Float, Match: plain(reflect.Float32)},
	{Kind: Double, Match: plain(reflect.Float64)},
	{Kind: Char}, // rune is int32, so CHAR is never inferred
	{Kind: String, Match: plain(reflect.String)},
	{Kind: Map, Match: isStringMap},

	{Kind: BooleanList, List: true, Match: plain(reflect.Bool)},
	{Kind: ByteList, List: true, Match: plain(reflect.Int8, reflect.Uint8)},
	{Kind: ShortList, List: true, Match: plain(reflect.Int16, reflect.Uint16)},
	{Kind: IntList, List: true, Match: plain(reflect.Int, reflect.Int32, reflect.Uint, reflect.Uint32)},
	{Kind: LongList, List: true, Match: plain(reflect.Int64, reflect.Uint64)},
	{Kind: FloatList, List: true, Match: plain(reflect.Float32)},
	{Kind: DoubleList, List: true, Match: plain(reflect.Float64)},
	{Kind: CharList, List: true},
	{Kind: StringList, List: true, Match: plain(reflect.String)},
	{Kind: MapList, List: true, Match: isStringMap},
	{Kind: List, List: true},

	{Kind: Object},
}

// Catalog returns a copy of the ordered kind catalog.
func Catalog() []Descriptor {
	return slices.Clone(catalog)
}

// Lookup returns the descriptor of k.
func Lookup(k Kind) (Descriptor, bool) {
	for _, d := range catalog {
		if d.Kind == k {
			return d, true
		}
	}

	return Descriptor{}, false
}

func is(want reflect.Type) func(reflect.Type) bool {
	return func(t reflect.Type) bool {
		return t == want
	}
}

// plain matches types of the given reflect kinds that no special kind
// claims, so []time.Duration or []Mode fall through to LIST.
func plain(kinds ...reflect.Kind) func(reflect.Type) bool {
	return func(t reflect.Type) bool {
		return slices.Contains(kinds, t.Kind()) && !isSpecial(t)
	}
}

func isSpecial(t reflect.Type) bool {
	switch t {
	case typeDuration, typeUUID, typePattern, typeVector, typeColor:
		return true
	}

	return isEnum(t)
}

// isEnum matches named integer or string types with a symbolic text form.
func isEnum(t reflect.Type) bool {
	switch t.Kind() {
	default:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.String:
	}

	return t.Implements(typeMarshaler) && reflect.PointerTo(t).Implements(typeUnmarshaler)
}

func isStringMap(t reflect.Type) bool {
	return t.Kind() == reflect.Map && t.Key().Kind() == reflect.String
}
