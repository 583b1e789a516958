// Package utils holds small generic predicates shared by the kind
// coercions.
package utils

import "unicode/utf8"

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// IsInRange checks if a value is within the specified range, both inclusive.
func IsInRange[T number](min T, value T, max T) bool {
	return min <= value && value <= max
}

// IsCodePoint reports whether n is a valid Unicode code point outside the
// surrogate range.
func IsCodePoint(n int) bool {
	return IsInRange(0, n, utf8.MaxRune) && !IsInRange(0xD800, n, 0xDFFF)
}
