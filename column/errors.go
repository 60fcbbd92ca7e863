package column

import (
	"errors"
	"fmt"
)

// ErrUnknownType is returned when a column is created with an unrecognized
// type tag (e.g. while decoding a file written by a newer format revision).
var ErrUnknownType = errors.New("unknown data type")

// TypeMismatchError indicates an insert or bulk load whose value type does
// not match the column's declared type.
type TypeMismatchError struct {
	Column string
	Want   DataType // the column's declared type
	Got    DataType // the type of the attempted operation
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("column %q holds %s, not %s", e.Column, e.Want, e.Got)
}
