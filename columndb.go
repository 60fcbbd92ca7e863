package columndb

import (
	"fmt"

	"github.com/praba230890/columndb/column"
)

// initialColumns is the starting capacity of the column array; it doubles
// when full.
const initialColumns = 5

// Database is an ordered, name-addressed collection of columns. Column
// order is schema order: it fixes the file layout and gives "row N"
// meaning across columns.
//
// A Database is not safe for concurrent use; see the package doc.
type Database struct {
	columns []*column.Column
	path    string // last SaveTo/LoadFrom target, used by Save
	lastErr string
	opts    options
}

// New creates an empty database.
func New(opts ...Option) *Database {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Database{
		columns: make([]*column.Column, 0, initialColumns),
		opts:    o,
	}
}

// record overwrites the last-error slot and passes err through. Every
// fallible operation funnels its result here, so LastError always reflects
// the most recent fallible call.
func (db *Database) record(err error) error {
	if err != nil {
		db.lastErr = err.Error()
	} else {
		db.lastErr = ""
	}
	return err
}

// LastError returns a human-readable description of the most recent
// failure, or "" if the most recent fallible operation succeeded. It
// exists for binding layers that cannot consume Go error values; Go
// callers should check returned errors instead.
func (db *Database) LastError() string {
	return db.lastErr
}

// AddColumn appends a new empty column to the schema. It fails with
// ErrDuplicateColumn if the name is taken, ErrInvalidArgument for an empty
// name, and ErrUnknownType for an unrecognized type.
func (db *Database) AddColumn(name string, t column.DataType) error {
	err := db.addColumn(name, t)
	db.opts.logger.LogAddColumn(name, t.String(), err)
	return db.record(err)
}

func (db *Database) addColumn(name string, t column.DataType) error {
	if name == "" {
		return fmt.Errorf("%w: empty column name", ErrInvalidArgument)
	}
	for _, c := range db.columns {
		if c.Name() == name {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
	}
	c, err := column.New(name, t)
	if err != nil {
		return translateError(err)
	}
	db.columns = append(db.columns, c)
	return nil
}

// lookup finds a column by exact name match. Linear scan: schemas are
// small and order is significant.
func (db *Database) lookup(name string) (*column.Column, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty column name", ErrInvalidArgument)
	}
	for _, c := range db.columns {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// Column returns the named column, or ErrColumnNotFound.
func (db *Database) Column(name string) (*column.Column, error) {
	c, err := db.lookup(name)
	return c, db.record(err)
}

// ColumnIndex returns the schema position of the named column, or
// ErrColumnNotFound.
func (db *Database) ColumnIndex(name string) (int, error) {
	for i, c := range db.columns {
		if c.Name() == name {
			db.record(nil)
			return i, nil
		}
	}
	return -1, db.record(fmt.Errorf("%w: %q", ErrColumnNotFound, name))
}

// insert appends one value to the named column via appendFn.
func (db *Database) insert(name string, appendFn func(*column.Column) error) error {
	c, err := db.lookup(name)
	if err != nil {
		return err
	}
	return translateError(appendFn(c))
}

// InsertInt32 appends a value to the named Int32 column.
func (db *Database) InsertInt32(name string, v int32) error {
	return db.record(db.insert(name, func(c *column.Column) error { return c.AppendInt32(v) }))
}

// InsertInt64 appends a value to the named Int64 column.
func (db *Database) InsertInt64(name string, v int64) error {
	return db.record(db.insert(name, func(c *column.Column) error { return c.AppendInt64(v) }))
}

// InsertFloat32 appends a value to the named Float32 column.
func (db *Database) InsertFloat32(name string, v float32) error {
	return db.record(db.insert(name, func(c *column.Column) error { return c.AppendFloat32(v) }))
}

// InsertFloat64 appends a value to the named Float64 column.
func (db *Database) InsertFloat64(name string, v float64) error {
	return db.record(db.insert(name, func(c *column.Column) error { return c.AppendFloat64(v) }))
}

// InsertString appends a value to the named String column.
func (db *Database) InsertString(name string, v string) error {
	return db.record(db.insert(name, func(c *column.Column) error { return c.AppendString(v) }))
}

// InsertBool appends a value to the named Bool column.
func (db *Database) InsertBool(name string, v bool) error {
	return db.record(db.insert(name, func(c *column.Column) error { return c.AppendBool(v) }))
}

// InsertNull appends a NULL row to the named column of any type.
func (db *Database) InsertNull(name string) error {
	return db.record(db.insert(name, func(c *column.Column) error {
		c.AppendNull()
		return nil
	}))
}

// NumRows returns the row count of the first column, or 0 for an empty
// schema. Columns with uneven inserts make this ambiguous; see the
// package doc.
func (db *Database) NumRows() int {
	if len(db.columns) == 0 {
		return 0
	}
	return db.columns[0].Len()
}

// NumColumns returns the number of columns in the schema.
func (db *Database) NumColumns() int {
	return len(db.columns)
}

// ColumnName returns the name of the column at the given schema position,
// or "" if the index is out of range.
func (db *Database) ColumnName(i int) string {
	if i < 0 || i >= len(db.columns) {
		return ""
	}
	return db.columns[i].Name()
}

// ColumnType returns the type of the column at the given schema position.
// The second result is false if the index is out of range.
func (db *Database) ColumnType(i int) (column.DataType, bool) {
	if i < 0 || i >= len(db.columns) {
		return 0, false
	}
	return db.columns[i].Type(), true
}

// ColumnAt returns the column at the given schema position, or nil if the
// index is out of range.
func (db *Database) ColumnAt(i int) *column.Column {
	if i < 0 || i >= len(db.columns) {
		return nil
	}
	return db.columns[i]
}

// Path returns the file this database was last saved to or loaded from,
// or "" if it has never touched a file.
func (db *Database) Path() string {
	return db.path
}
