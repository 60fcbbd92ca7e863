// Package nullmask implements the byte-backed NULL bitmap shared by the
// in-memory column representation and the on-disk format.
//
// Bits are LSB-first within each byte: row r lives at byte r/8, bit r%8.
// A set bit means the row is NULL. The same layout is written verbatim to
// the data file, so the mask must stay wire-stable.
package nullmask

// Size returns the number of bytes needed to track the given number of rows.
func Size(rows int) int {
	return (rows + 7) / 8
}

// Mask is a growable NULL bitmap.
//
// Out-of-range rows are ignored on Set/Clear and report false on Test,
// mirroring the permissive accessor contract of the column layer.
type Mask struct {
	bits []byte
}

// New creates a mask sized for the given row capacity, all bits clear.
func New(capacity int) *Mask {
	return &Mask{bits: make([]byte, Size(capacity))}
}

// Grow resizes the mask to cover the given row capacity, preserving
// existing bits. Shrinking is not supported; smaller capacities are a no-op.
func (m *Mask) Grow(capacity int) {
	need := Size(capacity)
	if need <= len(m.bits) {
		return
	}
	bits := make([]byte, need)
	copy(bits, m.bits)
	m.bits = bits
}

// Set marks the row as NULL.
func (m *Mask) Set(row int) {
	if row < 0 || row/8 >= len(m.bits) {
		return
	}
	m.bits[row/8] |= 1 << (row % 8)
}

// Clear marks the row as not NULL.
func (m *Mask) Clear(row int) {
	if row < 0 || row/8 >= len(m.bits) {
		return
	}
	m.bits[row/8] &^= 1 << (row % 8)
}

// Test reports whether the row is NULL. Out-of-range rows report false.
func (m *Mask) Test(row int) bool {
	if row < 0 || row/8 >= len(m.bits) {
		return false
	}
	return m.bits[row/8]&(1<<(row%8)) != 0
}

// Bytes returns the serialized bitmap for the first rows rows.
// The returned slice aliases the mask; callers must not retain it
// across mutations.
func (m *Mask) Bytes(rows int) []byte {
	return m.bits[:Size(rows)]
}

// Load replaces the mask contents with the given serialized bitmap,
// growing the backing storage if needed.
func (m *Mask) Load(b []byte) {
	if len(b) > len(m.bits) {
		m.bits = make([]byte, len(b))
	} else {
		clear(m.bits)
	}
	copy(m.bits, b)
}

// Count returns the number of NULL rows among the first rows rows.
func (m *Mask) Count(rows int) int {
	count := 0
	for r := 0; r < rows; r++ {
		if m.bits[r/8]&(1<<(r%8)) != 0 {
			count++
		}
	}
	return count
}
