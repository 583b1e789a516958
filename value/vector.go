// Package value holds small value types that settings structs can bind
// alongside Go primitives.
package value

import (
	"math"
	"strconv"
)

// Vector is a point or direction in three-dimensional space. It is stored
// as a mapping with the keys x, y and z.
type Vector struct {
	X, Y, Z float64
}

// Vec returns the vector (x, y, z).
func Vec(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// Add returns v+o.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Length returns the Euclidean norm of v.
func (v Vector) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vector) String() string {
	return "(" + format(v.X) + ", " + format(v.Y) + ", " + format(v.Z) + ")"
}

// Map returns the stored representation of v.
func (v Vector) Map() map[string]any {
	return map[string]any{"x": v.X, "y": v.Y, "z": v.Z}
}

func format(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
