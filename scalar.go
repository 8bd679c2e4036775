package mesh

import "fmt"

// ScalarType tags the element type of a Buffer or Attribute. Carrying an
// explicit tag lets byte widths and typed views be selected with a switch
// instead of reflection.
type ScalarType uint8

const (
	// Float32 is a 32-bit IEEE 754 float, the default vertex data type.
	Float32 ScalarType = iota
	// Uint32 is a 32-bit unsigned integer.
	Uint32
	// Int32 is a 32-bit signed integer.
	Int32
	// Uint16 is a 16-bit unsigned integer, the default index type.
	Uint16
	// Int16 is a 16-bit signed integer.
	Int16
	// Uint8 is an 8-bit unsigned integer, common for packed colors.
	Uint8
	// Int8 is an 8-bit signed integer.
	Int8
)

// ByteWidth returns the size of one element in bytes.
func (t ScalarType) ByteWidth() int {
	switch t {
	case Float32, Uint32, Int32:
		return 4
	case Uint16, Int16:
		return 2
	case Uint8, Int8:
		return 1
	default:
		return 0
	}
}

// String returns a human-readable name for the scalar type.
func (t ScalarType) String() string {
	switch t {
	case Float32:
		return "Float32"
	case Uint32:
		return "Uint32"
	case Int32:
		return "Int32"
	case Uint16:
		return "Uint16"
	case Int16:
		return "Int16"
	case Uint8:
		return "Uint8"
	case Int8:
		return "Int8"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}
