package column

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// RowSet is a compressed set of row indices backed by a Roaring Bitmap.
// It is the analytics-side view of a column's NULL bitmap: cheap to
// intersect, union, and iterate without touching the wire representation.
type RowSet struct {
	rb *roaring.Bitmap
}

// NewRowSet creates an empty row set.
func NewRowSet() *RowSet {
	return &RowSet{rb: roaring.New()}
}

// NullRows returns the set of NULL row indices in the column.
// The result is a snapshot; later appends do not update it.
func (c *Column) NullRows() *RowSet {
	rs := NewRowSet()
	for r := 0; r < c.rows; r++ {
		if c.nulls.Test(r) {
			rs.rb.Add(uint32(r))
		}
	}
	return rs
}

// Add adds a row index to the set.
func (s *RowSet) Add(row int) {
	if row >= 0 {
		s.rb.Add(uint32(row))
	}
}

// Contains reports whether the row index is in the set.
func (s *RowSet) Contains(row int) bool {
	return row >= 0 && s.rb.Contains(uint32(row))
}

// Cardinality returns the number of rows in the set.
func (s *RowSet) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// IsEmpty reports whether the set contains no rows.
func (s *RowSet) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Clone returns a deep copy of the set.
func (s *RowSet) Clone() *RowSet {
	return &RowSet{rb: s.rb.Clone()}
}

// And intersects the set with other in place.
func (s *RowSet) And(other *RowSet) {
	s.rb.And(other.rb)
}

// Or unions the set with other in place.
func (s *RowSet) Or(other *RowSet) {
	s.rb.Or(other.rb)
}

// Rows iterates the set in ascending row order.
func (s *RowSet) Rows() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}
