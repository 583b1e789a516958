package kind

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind identifies how a field is read from and written to the store.
type Kind int

const (
	Auto Kind = iota // AUTO

	// Scalars
	Boolean  // BOOLEAN
	Byte     // BYTE
	Short    // SHORT
	Int      // INT
	Long     // LONG
	Float    // FLOAT
	Double   // DOUBLE
	Char     // CHAR
	String   // STRING
	Enum     // ENUM
	Duration // DURATION
	UUID     // UUID
	Pattern  // PATTERN
	Vector   // VECTOR
	Color    // COLOR
	Map      // MAP

	// Lists
	List        // LIST
	BooleanList // BOOLEAN_LIST
	ByteList    // BYTE_LIST
	ShortList   // SHORT_LIST
	IntList     // INT_LIST
	LongList    // LONG_LIST
	FloatList   // FLOAT_LIST
	DoubleList  // DOUBLE_LIST
	CharList    // CHAR_LIST
	StringList  // STRING_LIST
	MapList     // MAP_LIST

	// Object is the unstructured fallback: raw YAML decode and encode.
	Object // OBJECT

	// Total is a constant that represents the total number of kinds defined
	Total = int(iota)
)

// IsList reports whether k binds a slice.
func (k Kind) IsList() bool {
	return k >= List && k <= MapList
}

// Elem returns the scalar kind of a typed list's elements, or Auto for
// LIST and non-list kinds.
func (k Kind) Elem() Kind {
	switch k {
	default:
		return Auto
	case BooleanList:
		return Boolean
	case ByteList:
		return Byte
	case ShortList:
		return Short
	case IntList:
		return Int
	case LongList:
		return Long
	case FloatList:
		return Float
	case DoubleList:
		return Double
	case CharList:
		return Char
	case StringList:
		return String
	case MapList:
		return Map
	}
}

// IsNumber reports whether k is stored as a YAML number.
func (k Kind) IsNumber() bool {
	switch k {
	default:
		return false
	case Byte, Short, Int, Long, Float, Double:
		return true
	}
}

// IsInteger reports whether k is stored as a YAML integer.
func (k Kind) IsInteger() bool {
	switch k {
	default:
		return false
	case Byte, Short, Int, Long:
		return true
	}
}

// Parse returns the kind named s, ignoring case. Dashes may replace
// underscores and the empty string means Auto.
func Parse(s string) (Kind, error) {
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	if name == "" {
		return Auto, nil
	}

	for k := Kind(0); int(k) < Total; k++ {
		if k.String() == name {
			return k, nil
		}
	}

	return Auto, fmt.Errorf("unknown kind %q", s)
}
