package columndb

import (
	"fmt"
	"io"
	"time"

	"github.com/praba230890/columndb/column"
	"github.com/praba230890/columndb/persistence"
)

// Snapshot serializes the database to w in the .cdb binary format.
//
// The format stores a single row count, so a ragged database (columns with
// unequal row counts) is rejected with ErrInvalidArgument rather than
// written as an unloadable file.
func (db *Database) Snapshot(w io.Writer) error {
	return db.record(translateError(db.snapshot(w)))
}

func (db *Database) snapshot(w io.Writer) error {
	rows := db.NumRows()
	for _, c := range db.columns {
		if c.Len() != rows {
			return fmt.Errorf("%w: column %q has %d rows, expected %d",
				ErrInvalidArgument, c.Name(), c.Len(), rows)
		}
	}

	bw := persistence.NewWriter(w)

	h := &persistence.FileHeader{
		NumColumns: uint32(len(db.columns)),
		NumRows:    uint32(rows),
		Timestamp:  uint64(time.Now().Unix()),
	}
	if err := bw.WriteHeader(h); err != nil {
		return err
	}

	// Metadata blocks carry data offsets and sizes for external tooling.
	// The loader ignores them, but they are computed correctly here: each
	// column's data section starts where the previous one's bitmap ended.
	metas := make([]*persistence.ColumnMeta, len(db.columns))
	offset := uint64(persistence.HeaderSize)
	for i, c := range db.columns {
		metas[i] = &persistence.ColumnMeta{
			Type:           uint8(c.Type()),
			Name:           c.Name(),
			DataSize:       dataSize(c),
			NullBitmapSize: uint64(len(c.NullBytes())),
		}
		offset += metas[i].EncodedSize()
	}
	for _, m := range metas {
		m.DataOffset = offset
		offset += m.DataSize + m.NullBitmapSize
	}
	for _, m := range metas {
		if err := bw.WriteColumnMeta(m); err != nil {
			return err
		}
	}

	for _, c := range db.columns {
		if err := writeColumnData(bw, c); err != nil {
			return err
		}
		if err := bw.WriteNullBitmap(c.NullBytes()); err != nil {
			return err
		}
	}

	return bw.WriteFooter()
}

func dataSize(c *column.Column) uint64 {
	if c.Type() == column.String {
		return persistence.StringsSize(c.Strings())
	}
	return uint64(c.Len()) * uint64(c.Type().ElementSize())
}

func writeColumnData(bw *persistence.Writer, c *column.Column) error {
	switch c.Type() {
	case column.Int32:
		return bw.WriteInt32s(c.Int32s())
	case column.Int64:
		return bw.WriteInt64s(c.Int64s())
	case column.Float32:
		return bw.WriteFloat32s(c.Float32s())
	case column.Float64:
		return bw.WriteFloat64s(c.Float64s())
	case column.String:
		return bw.WriteStrings(c.Strings())
	case column.Bool:
		return bw.WriteBools(c.Bools())
	default:
		return fmt.Errorf("%w: tag %d", ErrUnknownType, uint8(c.Type()))
	}
}

// Restore deserializes a .cdb stream into the database, appending the
// decoded columns to the schema.
//
// Restore expects a clean (empty) database: loading into a populated one
// either collides with existing column names, failing with
// ErrDuplicateColumn, or appends unrelated columns. On failure the
// database keeps the columns decoded so far, each with a row count
// reflecting the rows actually read.
func (db *Database) Restore(r io.Reader) error {
	return db.record(translateError(db.restore(r)))
}

func (db *Database) restore(r io.Reader) error {
	br := persistence.NewReader(r)
	br.SetVerify(db.opts.verifyChecksums)

	h, err := br.ReadHeader()
	if err != nil {
		return err
	}
	rows := int(h.NumRows)

	start := len(db.columns)
	for i := 0; i < int(h.NumColumns); i++ {
		m, err := br.ReadColumnMeta()
		if err != nil {
			return err
		}
		t := column.DataType(m.Type)
		if !t.Valid() {
			return fmt.Errorf("%w: tag %d", ErrUnknownType, m.Type)
		}
		if err := db.addColumn(m.Name, t); err != nil {
			return err
		}
	}

	for _, c := range db.columns[start:] {
		if err := loadColumnData(br, c, rows); err != nil {
			return err
		}
	}

	_, err = br.ReadFooter()
	return err
}

func loadColumnData(br *persistence.Reader, c *column.Column, rows int) error {
	var err error
	switch c.Type() {
	case column.Int32:
		var v []int32
		if v, err = br.ReadInt32s(rows); err == nil {
			err = c.SetInt32s(v)
		}
	case column.Int64:
		var v []int64
		if v, err = br.ReadInt64s(rows); err == nil {
			err = c.SetInt64s(v)
		}
	case column.Float32:
		var v []float32
		if v, err = br.ReadFloat32s(rows); err == nil {
			err = c.SetFloat32s(v)
		}
	case column.Float64:
		var v []float64
		if v, err = br.ReadFloat64s(rows); err == nil {
			err = c.SetFloat64s(v)
		}
	case column.String:
		var v []string
		if v, err = br.ReadStrings(rows); err == nil {
			err = c.SetStrings(v)
		}
	case column.Bool:
		var v []bool
		if v, err = br.ReadBools(rows); err == nil {
			err = c.SetBools(v)
		}
	}
	if err != nil {
		return err
	}

	bits, err := br.ReadNullBitmap(rows)
	if err != nil {
		return err
	}
	c.SetNulls(bits)
	return nil
}

// SaveTo snapshots the database to a file, atomically replacing any
// existing file at path. The path is remembered for Save.
func (db *Database) SaveTo(path string) error {
	err := db.saveTo(path)
	db.opts.logger.LogSave(path, db.NumColumns(), db.NumRows(), err)
	return db.record(err)
}

func (db *Database) saveTo(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidArgument)
	}
	if err := persistence.SaveToFile(path, db.snapshot); err != nil {
		return translateError(err)
	}
	db.path = path
	return nil
}

// Save snapshots the database to the file it was last saved to or loaded
// from. It fails with ErrInvalidArgument if the database has no
// associated file.
func (db *Database) Save() error {
	if db.path == "" {
		return db.record(fmt.Errorf("%w: database has no associated file", ErrInvalidArgument))
	}
	return db.SaveTo(db.path)
}

// LoadFrom restores the database from a .cdb file. See Restore for the
// clean-database precondition and partial-failure behavior.
func (db *Database) LoadFrom(path string) error {
	err := db.loadFrom(path)
	db.opts.logger.LogLoad(path, db.NumColumns(), db.NumRows(), err)
	return db.record(err)
}

func (db *Database) loadFrom(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidArgument)
	}
	if err := persistence.LoadFromFile(path, db.restore); err != nil {
		return translateError(err)
	}
	db.path = path
	return nil
}

// Open creates a new database and loads it from the given .cdb file.
func Open(path string, opts ...Option) (*Database, error) {
	db := New(opts...)
	if err := db.LoadFrom(path); err != nil {
		return nil, err
	}
	return db, nil
}
