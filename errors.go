package columndb

import (
	"errors"
	"fmt"
	"os"

	"github.com/praba230890/columndb/column"
	"github.com/praba230890/columndb/persistence"
)

var (
	// ErrInvalidArgument is returned for missing or empty required input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDuplicateColumn is returned when adding a column whose name is
	// already present.
	ErrDuplicateColumn = errors.New("duplicate column")
	// ErrColumnNotFound is returned when a named column does not exist.
	ErrColumnNotFound = errors.New("column not found")
	// ErrTypeMismatch is returned when an insert's value type differs
	// from the column's declared type.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrUnknownType is returned for unrecognized type tags, typically
	// while decoding a file.
	ErrUnknownType = errors.New("unknown data type")
	// ErrIO wraps file open/read/write failures.
	ErrIO = errors.New("i/o failure")
	// ErrFormat wraps bad magic, unsupported versions, truncation, and
	// checksum mismatches found while decoding a file.
	ErrFormat = errors.New("invalid file format")
)

// translateError maps lower-layer errors into the package's public error
// contract. Errors that already carry a public sentinel pass through.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var tm *column.TypeMismatchError
	if errors.As(err, &tm) {
		return fmt.Errorf("%w: %w", ErrTypeMismatch, err)
	}
	if errors.Is(err, column.ErrUnknownType) {
		return fmt.Errorf("%w: %w", ErrUnknownType, err)
	}

	// Format-level failures.
	if errors.Is(err, persistence.ErrInvalidMagic) ||
		errors.Is(err, persistence.ErrInvalidVersion) ||
		errors.Is(err, persistence.ErrCorrupted) ||
		errors.Is(err, persistence.ErrNameTooLong) {
		return fmt.Errorf("%w: %w", ErrFormat, err)
	}

	// OS-level failures.
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	return err
}
