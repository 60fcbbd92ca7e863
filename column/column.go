package column

import (
	"fmt"

	"github.com/praba230890/columndb/internal/nullmask"
)

// InitialCapacity is the element capacity every new column starts with.
// Buffers double from here when full.
const InitialCapacity = 10

// Column is a single named, typed, growable buffer plus a parallel NULL
// bitmap. Exactly one value arm is allocated, matching the declared
// DataType; the arm never changes after creation.
//
// A Column is not safe for concurrent mutation. Callers that share one
// across goroutines must serialize access externally.
type Column struct {
	name  string
	dtype DataType

	// Value arms, one per DataType. Slots past Len() are undefined.
	int32s   []int32
	int64s   []int64
	float32s []float32
	float64s []float64
	strs     []string
	bools    []bool

	nulls    *nullmask.Mask
	rows     int
	capacity int
}

// New creates an empty column of the given type with capacity
// InitialCapacity. It fails with ErrUnknownType for unrecognized type tags.
func New(name string, t DataType) (*Column, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: tag %d", ErrUnknownType, uint8(t))
	}
	c := &Column{
		name:     name,
		dtype:    t,
		capacity: InitialCapacity,
		nulls:    nullmask.New(InitialCapacity),
	}
	c.alloc(InitialCapacity)
	return c, nil
}

func (c *Column) alloc(capacity int) {
	switch c.dtype {
	case Int32:
		c.int32s = make([]int32, capacity)
	case Int64:
		c.int64s = make([]int64, capacity)
	case Float32:
		c.float32s = make([]float32, capacity)
	case Float64:
		c.float64s = make([]float64, capacity)
	case String:
		c.strs = make([]string, capacity)
	case Bool:
		c.bools = make([]bool, capacity)
	}
}

// Name returns the column name. Names are immutable after creation.
func (c *Column) Name() string { return c.name }

// Type returns the column's declared data type.
func (c *Column) Type() DataType { return c.dtype }

// Len returns the number of logical rows in the column.
func (c *Column) Len() int { return c.rows }

// Cap returns the allocated element capacity.
func (c *Column) Cap() int { return c.capacity }

// grow doubles the value arm and the NULL bitmap when the next append
// would exceed capacity.
func (c *Column) grow() {
	if c.rows < c.capacity {
		return
	}
	newCap := c.capacity * 2
	switch c.dtype {
	case Int32:
		s := make([]int32, newCap)
		copy(s, c.int32s)
		c.int32s = s
	case Int64:
		s := make([]int64, newCap)
		copy(s, c.int64s)
		c.int64s = s
	case Float32:
		s := make([]float32, newCap)
		copy(s, c.float32s)
		c.float32s = s
	case Float64:
		s := make([]float64, newCap)
		copy(s, c.float64s)
		c.float64s = s
	case String:
		s := make([]string, newCap)
		copy(s, c.strs)
		c.strs = s
	case Bool:
		s := make([]bool, newCap)
		copy(s, c.bools)
		c.bools = s
	}
	c.nulls.Grow(newCap)
	c.capacity = newCap
}

func (c *Column) mismatch(got DataType) error {
	return &TypeMismatchError{Column: c.name, Want: c.dtype, Got: got}
}

// append finalizes a write at the current tail: the row is marked
// non-NULL and the row count advances.
func (c *Column) commit() {
	c.nulls.Clear(c.rows)
	c.rows++
}

// AppendInt32 appends a value to an Int32 column.
func (c *Column) AppendInt32(v int32) error {
	if c.dtype != Int32 {
		return c.mismatch(Int32)
	}
	c.grow()
	c.int32s[c.rows] = v
	c.commit()
	return nil
}

// AppendInt64 appends a value to an Int64 column.
func (c *Column) AppendInt64(v int64) error {
	if c.dtype != Int64 {
		return c.mismatch(Int64)
	}
	c.grow()
	c.int64s[c.rows] = v
	c.commit()
	return nil
}

// AppendFloat32 appends a value to a Float32 column.
func (c *Column) AppendFloat32(v float32) error {
	if c.dtype != Float32 {
		return c.mismatch(Float32)
	}
	c.grow()
	c.float32s[c.rows] = v
	c.commit()
	return nil
}

// AppendFloat64 appends a value to a Float64 column.
func (c *Column) AppendFloat64(v float64) error {
	if c.dtype != Float64 {
		return c.mismatch(Float64)
	}
	c.grow()
	c.float64s[c.rows] = v
	c.commit()
	return nil
}

// AppendString appends a value to a String column. Go strings are
// immutable, so the assignment already gives the column exclusive
// ownership of the stored bytes.
func (c *Column) AppendString(v string) error {
	if c.dtype != String {
		return c.mismatch(String)
	}
	c.grow()
	c.strs[c.rows] = v
	c.commit()
	return nil
}

// AppendBool appends a value to a Bool column.
func (c *Column) AppendBool(v bool) error {
	if c.dtype != Bool {
		return c.mismatch(Bool)
	}
	c.grow()
	c.bools[c.rows] = v
	c.commit()
	return nil
}

// AppendNull appends a NULL row. The data slot is left at its zero value;
// for String columns the row conventionally holds an empty string.
func (c *Column) AppendNull() {
	c.grow()
	if c.dtype == String {
		c.strs[c.rows] = ""
	}
	c.nulls.Set(c.rows)
	c.rows++
}

// Int32 returns the value at row, or 0 if the column is not Int32 or the
// row is out of range. No error is signaled; see the package doc.
func (c *Column) Int32(row int) int32 {
	if c.dtype != Int32 || row < 0 || row >= c.rows {
		return 0
	}
	return c.int32s[row]
}

// Int64 returns the value at row, or 0 on type or range mismatch.
func (c *Column) Int64(row int) int64 {
	if c.dtype != Int64 || row < 0 || row >= c.rows {
		return 0
	}
	return c.int64s[row]
}

// Float32 returns the value at row, or 0 on type or range mismatch.
func (c *Column) Float32(row int) float32 {
	if c.dtype != Float32 || row < 0 || row >= c.rows {
		return 0
	}
	return c.float32s[row]
}

// Float64 returns the value at row, or 0 on type or range mismatch.
func (c *Column) Float64(row int) float64 {
	if c.dtype != Float64 || row < 0 || row >= c.rows {
		return 0
	}
	return c.float64s[row]
}

// StringValue returns the value at row, or "" on type or range mismatch.
// NULL rows also read as "".
func (c *Column) StringValue(row int) string {
	if c.dtype != String || row < 0 || row >= c.rows {
		return ""
	}
	return c.strs[row]
}

// Bool returns the value at row, or false on type or range mismatch.
func (c *Column) Bool(row int) bool {
	if c.dtype != Bool || row < 0 || row >= c.rows {
		return false
	}
	return c.bools[row]
}

// Int32s returns a view of the column's rows. The slice aliases internal
// storage and is invalidated by the next append; callers must not mutate
// it. Returns nil for non-Int32 columns.
func (c *Column) Int32s() []int32 {
	if c.dtype != Int32 {
		return nil
	}
	return c.int32s[:c.rows]
}

// Int64s returns a view of the column's rows. See Int32s for aliasing
// rules.
func (c *Column) Int64s() []int64 {
	if c.dtype != Int64 {
		return nil
	}
	return c.int64s[:c.rows]
}

// Float32s returns a view of the column's rows. See Int32s for aliasing
// rules.
func (c *Column) Float32s() []float32 {
	if c.dtype != Float32 {
		return nil
	}
	return c.float32s[:c.rows]
}

// Float64s returns a view of the column's rows. See Int32s for aliasing
// rules.
func (c *Column) Float64s() []float64 {
	if c.dtype != Float64 {
		return nil
	}
	return c.float64s[:c.rows]
}

// Strings returns a view of the column's rows. NULL rows read as "".
// See Int32s for aliasing rules.
func (c *Column) Strings() []string {
	if c.dtype != String {
		return nil
	}
	return c.strs[:c.rows]
}

// Bools returns a view of the column's rows. See Int32s for aliasing
// rules.
func (c *Column) Bools() []bool {
	if c.dtype != Bool {
		return nil
	}
	return c.bools[:c.rows]
}

// IsNull reports the NULL state of a row as a tri-state value:
// -1 for an out-of-range row, otherwise 0 (value present) or 1 (NULL).
func (c *Column) IsNull(row int) int {
	if row < 0 || row >= c.rows {
		return -1
	}
	if c.nulls.Test(row) {
		return 1
	}
	return 0
}

// NullBytes returns the serialized NULL bitmap covering the column's
// current rows. The slice aliases internal state; callers must not
// mutate or retain it across appends.
func (c *Column) NullBytes() []byte {
	return c.nulls.Bytes(c.rows)
}

// loadCapacity picks the post-load capacity for n rows, preserving the
// double-from-10 growth sequence.
func loadCapacity(n int) int {
	capacity := InitialCapacity
	for capacity < n {
		capacity *= 2
	}
	return capacity
}

// SetInt32s replaces the column contents with the given values, resetting
// all rows to non-NULL. Used when decoding the data section of a file.
func (c *Column) SetInt32s(v []int32) error {
	if c.dtype != Int32 {
		return c.mismatch(Int32)
	}
	c.capacity = loadCapacity(len(v))
	c.int32s = make([]int32, c.capacity)
	copy(c.int32s, v)
	c.reset(len(v))
	return nil
}

// SetInt64s replaces the column contents with the given values.
func (c *Column) SetInt64s(v []int64) error {
	if c.dtype != Int64 {
		return c.mismatch(Int64)
	}
	c.capacity = loadCapacity(len(v))
	c.int64s = make([]int64, c.capacity)
	copy(c.int64s, v)
	c.reset(len(v))
	return nil
}

// SetFloat32s replaces the column contents with the given values.
func (c *Column) SetFloat32s(v []float32) error {
	if c.dtype != Float32 {
		return c.mismatch(Float32)
	}
	c.capacity = loadCapacity(len(v))
	c.float32s = make([]float32, c.capacity)
	copy(c.float32s, v)
	c.reset(len(v))
	return nil
}

// SetFloat64s replaces the column contents with the given values.
func (c *Column) SetFloat64s(v []float64) error {
	if c.dtype != Float64 {
		return c.mismatch(Float64)
	}
	c.capacity = loadCapacity(len(v))
	c.float64s = make([]float64, c.capacity)
	copy(c.float64s, v)
	c.reset(len(v))
	return nil
}

// SetStrings replaces the column contents with the given values.
func (c *Column) SetStrings(v []string) error {
	if c.dtype != String {
		return c.mismatch(String)
	}
	c.capacity = loadCapacity(len(v))
	c.strs = make([]string, c.capacity)
	copy(c.strs, v)
	c.reset(len(v))
	return nil
}

// SetBools replaces the column contents with the given values.
func (c *Column) SetBools(v []bool) error {
	if c.dtype != Bool {
		return c.mismatch(Bool)
	}
	c.capacity = loadCapacity(len(v))
	c.bools = make([]bool, c.capacity)
	copy(c.bools, v)
	c.reset(len(v))
	return nil
}

func (c *Column) reset(rows int) {
	c.nulls = nullmask.New(c.capacity)
	c.rows = rows
}

// SetNulls replaces the NULL bitmap with the given serialized bits.
// Called after one of the Set* bulk loaders while decoding a file.
func (c *Column) SetNulls(bits []byte) {
	c.nulls.Load(bits)
	c.nulls.Grow(c.capacity)
}

// NullCount returns the number of NULL rows.
func (c *Column) NullCount() int {
	return c.nulls.Count(c.rows)
}
