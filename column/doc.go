// Package column implements the typed, growable column buffers that back a
// columndb database.
//
// Each Column holds exactly one value arm matching its DataType plus a
// parallel NULL bitmap. Buffers start at a capacity of 10 elements and
// double when full, giving amortized constant-time appends. Accessors are
// deliberately permissive: reading the wrong type or an out-of-range row
// returns the type's zero value instead of an error, preserving the
// behavioral contract expected by language bindings.
package column
