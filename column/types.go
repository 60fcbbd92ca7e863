package column

// DataType identifies the element type of a column.
//
// The numeric values are the on-disk type tags; they must remain stable.
type DataType uint8

const (
	// Int32 holds 32-bit signed integers.
	Int32 DataType = 0
	// Int64 holds 64-bit signed integers.
	Int64 DataType = 1
	// Float32 holds 32-bit floats.
	Float32 DataType = 2
	// Float64 holds 64-bit floats.
	Float64 DataType = 3
	// String holds variable-length byte strings.
	String DataType = 4
	// Bool holds booleans, one byte per row on disk.
	Bool DataType = 5
)

// String returns the string representation of the DataType.
func (t DataType) String() string {
	switch t {
	case Int32:
		return "Int32"
	case Int64:
		return "Int64"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	case String:
		return "String"
	case Bool:
		return "Bool"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is a recognized type tag.
func (t DataType) Valid() bool {
	return t <= Bool
}

// ElementSize returns the fixed on-disk element size in bytes,
// or 0 for variable-width types.
func (t DataType) ElementSize() int {
	switch t {
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	case Bool:
		return 1
	default:
		return 0
	}
}
