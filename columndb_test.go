package columndb

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praba230890/columndb/column"
)

func TestNewDatabase(t *testing.T) {
	db := New()
	assert.Equal(t, 0, db.NumRows())
	assert.Equal(t, 0, db.NumColumns())
	assert.Empty(t, db.LastError())
}

func TestAddColumn(t *testing.T) {
	db := New()
	require.NoError(t, db.AddColumn("id", column.Int64))
	require.NoError(t, db.AddColumn("name", column.String))

	assert.Equal(t, 2, db.NumColumns())
	assert.Equal(t, "id", db.ColumnName(0))
	assert.Equal(t, "name", db.ColumnName(1))

	dt, ok := db.ColumnType(1)
	require.True(t, ok)
	assert.Equal(t, column.String, dt)
}

func TestAddColumnDuplicate(t *testing.T) {
	db := New()
	require.NoError(t, db.AddColumn("id", column.Int64))

	err := db.AddColumn("id", column.String)
	assert.ErrorIs(t, err, ErrDuplicateColumn)
	assert.NotEmpty(t, db.LastError())

	// The existing column is untouched.
	assert.Equal(t, 1, db.NumColumns())
	dt, ok := db.ColumnType(0)
	require.True(t, ok)
	assert.Equal(t, column.Int64, dt)
}

func TestAddColumnValidation(t *testing.T) {
	db := New()
	assert.ErrorIs(t, db.AddColumn("", column.Int32), ErrInvalidArgument)
	assert.ErrorIs(t, db.AddColumn("x", column.DataType(77)), ErrUnknownType)
}

func TestManyColumns(t *testing.T) {
	// More columns than the initial array capacity.
	db := New()
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for _, n := range names {
		require.NoError(t, db.AddColumn(n, column.Int32))
	}
	assert.Equal(t, len(names), db.NumColumns())
	for i, n := range names {
		assert.Equal(t, n, db.ColumnName(i))
	}
}

func TestInsertAllTypes(t *testing.T) {
	db := New()
	require.NoError(t, db.AddColumn("i32", column.Int32))
	require.NoError(t, db.AddColumn("i64", column.Int64))
	require.NoError(t, db.AddColumn("f32", column.Float32))
	require.NoError(t, db.AddColumn("f64", column.Float64))
	require.NoError(t, db.AddColumn("s", column.String))
	require.NoError(t, db.AddColumn("b", column.Bool))

	require.NoError(t, db.InsertInt32("i32", -5))
	require.NoError(t, db.InsertInt64("i64", 1<<50))
	require.NoError(t, db.InsertFloat32("f32", 0.5))
	require.NoError(t, db.InsertFloat64("f64", -2.25))
	require.NoError(t, db.InsertString("s", "row zero"))
	require.NoError(t, db.InsertBool("b", true))

	assert.Equal(t, 1, db.NumRows())

	c, err := db.Column("i32")
	require.NoError(t, err)
	assert.Equal(t, int32(-5), c.Int32(0))

	c, err = db.Column("s")
	require.NoError(t, err)
	assert.Equal(t, "row zero", c.StringValue(0))
	assert.Equal(t, 0, c.IsNull(0))
}

func TestInsertTypeMismatch(t *testing.T) {
	db := New()
	require.NoError(t, db.AddColumn("v", column.Int32))
	require.NoError(t, db.InsertInt32("v", 1))

	err := db.InsertString("v", "nope")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	// Row count unchanged by the failed insert.
	c, _ := db.Column("v")
	assert.Equal(t, 1, c.Len())
}

func TestInsertColumnNotFound(t *testing.T) {
	db := New()
	assert.ErrorIs(t, db.InsertInt32("missing", 1), ErrColumnNotFound)
	assert.ErrorIs(t, db.InsertNull("missing"), ErrColumnNotFound)
	assert.Contains(t, db.LastError(), "missing")
}

func TestInsertNull(t *testing.T) {
	db := New()
	require.NoError(t, db.AddColumn("s", column.String))

	require.NoError(t, db.InsertString("s", ""))
	require.NoError(t, db.InsertNull("s"))

	c, _ := db.Column("s")
	assert.Equal(t, 0, c.IsNull(0), "explicit empty string is not NULL")
	assert.Equal(t, 1, c.IsNull(1))
	assert.Equal(t, "", c.StringValue(0))
}

func TestColumnIndex(t *testing.T) {
	db := New()
	require.NoError(t, db.AddColumn("a", column.Int32))
	require.NoError(t, db.AddColumn("b", column.Bool))

	i, err := db.ColumnIndex("b")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = db.ColumnIndex("z")
	assert.ErrorIs(t, err, ErrColumnNotFound)

	// Exact, case-sensitive match only.
	_, err = db.ColumnIndex("B")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestMetadataOutOfRange(t *testing.T) {
	db := New()
	require.NoError(t, db.AddColumn("a", column.Int32))

	assert.Equal(t, "", db.ColumnName(5))
	assert.Equal(t, "", db.ColumnName(-1))
	_, ok := db.ColumnType(5)
	assert.False(t, ok)
	assert.Nil(t, db.ColumnAt(9))
}

func TestLastErrorOverwritten(t *testing.T) {
	db := New()
	require.Error(t, db.InsertInt32("nope", 1))
	assert.NotEmpty(t, db.LastError())

	// The next successful fallible call clears the slot.
	require.NoError(t, db.AddColumn("nope", column.Int32))
	assert.Empty(t, db.LastError())
}

// buildSample creates a database covering every type with NULL and
// non-NULL rows.
func buildSample(t *testing.T) *Database {
	t.Helper()

	db := New()
	require.NoError(t, db.AddColumn("i32", column.Int32))
	require.NoError(t, db.AddColumn("i64", column.Int64))
	require.NoError(t, db.AddColumn("f32", column.Float32))
	require.NoError(t, db.AddColumn("f64", column.Float64))
	require.NoError(t, db.AddColumn("s", column.String))
	require.NoError(t, db.AddColumn("b", column.Bool))

	for row := 0; row < 12; row++ {
		if row%5 == 1 {
			for _, name := range []string{"i32", "i64", "f32", "f64", "s", "b"} {
				require.NoError(t, db.InsertNull(name))
			}
			continue
		}
		require.NoError(t, db.InsertInt32("i32", int32(row)))
		require.NoError(t, db.InsertInt64("i64", int64(row)*1e10))
		require.NoError(t, db.InsertFloat32("f32", float32(row)/2))
		require.NoError(t, db.InsertFloat64("f64", float64(row)*1.5))
		require.NoError(t, db.InsertString("s", string(rune('a'+row))))
		require.NoError(t, db.InsertBool("b", row%2 == 0))
	}
	return db
}

func assertSameContents(t *testing.T, want, got *Database) {
	t.Helper()

	require.Equal(t, want.NumColumns(), got.NumColumns())
	require.Equal(t, want.NumRows(), got.NumRows())

	for i := 0; i < want.NumColumns(); i++ {
		assert.Equal(t, want.ColumnName(i), got.ColumnName(i))
		wt, _ := want.ColumnType(i)
		gt, _ := got.ColumnType(i)
		assert.Equal(t, wt, gt)

		wc, gc := want.ColumnAt(i), got.ColumnAt(i)
		for row := 0; row < want.NumRows(); row++ {
			assert.Equal(t, wc.IsNull(row), gc.IsNull(row), "column %s row %d null", wc.Name(), row)
			switch wt {
			case column.Int32:
				assert.Equal(t, wc.Int32(row), gc.Int32(row))
			case column.Int64:
				assert.Equal(t, wc.Int64(row), gc.Int64(row))
			case column.Float32:
				assert.Equal(t, wc.Float32(row), gc.Float32(row))
			case column.Float64:
				assert.Equal(t, wc.Float64(row), gc.Float64(row))
			case column.String:
				assert.Equal(t, wc.StringValue(row), gc.StringValue(row))
			case column.Bool:
				assert.Equal(t, wc.Bool(row), gc.Bool(row))
			}
		}
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	db := buildSample(t)

	var buf bytes.Buffer
	require.NoError(t, db.Snapshot(&buf))

	loaded := New()
	require.NoError(t, loaded.Restore(&buf))

	assertSameContents(t, db, loaded)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := buildSample(t)
	path := filepath.Join(t.TempDir(), "sample.cdb")

	require.NoError(t, db.SaveTo(path))
	assert.Equal(t, path, db.Path())

	loaded, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, loaded.Path())

	assertSameContents(t, db, loaded)
}

func TestScenarioInt32Column(t *testing.T) {
	db := New()
	require.NoError(t, db.AddColumn("a", column.Int32))
	for i := int32(0); i < 15; i++ {
		require.NoError(t, db.InsertInt32("a", i))
	}

	assert.Equal(t, 15, db.NumRows())
	c, err := db.Column("a")
	require.NoError(t, err)
	assert.Equal(t, int32(10), c.Int32(10))

	var buf bytes.Buffer
	require.NoError(t, db.Snapshot(&buf))

	fresh := New()
	require.NoError(t, fresh.Restore(&buf))

	assert.Equal(t, 1, fresh.NumColumns())
	assert.Equal(t, "a", fresh.ColumnName(0))
	dt, _ := fresh.ColumnType(0)
	assert.Equal(t, column.Int32, dt)
	assert.Equal(t, 15, fresh.NumRows())

	fc, err := fresh.Column("a")
	require.NoError(t, err)
	for i := int32(0); i < 15; i++ {
		assert.Equal(t, i, fc.Int32(int(i)))
	}
}

func TestRestoreIntoPopulatedDatabase(t *testing.T) {
	db := New()
	require.NoError(t, db.AddColumn("a", column.Int32))
	require.NoError(t, db.InsertInt32("a", 1))

	var buf bytes.Buffer
	require.NoError(t, db.Snapshot(&buf))

	// Restoring a file holding column "a" into a database that already
	// has "a" collides.
	err := db.Restore(&buf)
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestSnapshotRaggedFails(t *testing.T) {
	db := New()
	require.NoError(t, db.AddColumn("a", column.Int32))
	require.NoError(t, db.AddColumn("b", column.Int32))
	require.NoError(t, db.InsertInt32("a", 1))
	require.NoError(t, db.InsertInt32("a", 2))
	require.NoError(t, db.InsertInt32("b", 1))

	var buf bytes.Buffer
	err := db.Snapshot(&buf)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRestoreCorruptStream(t *testing.T) {
	db := buildSample(t)

	var buf bytes.Buffer
	require.NoError(t, db.Snapshot(&buf))

	truncated := buf.Bytes()[:buf.Len()/2]
	err := New().Restore(bytes.NewReader(truncated))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestRestoreBadMagic(t *testing.T) {
	err := New().Restore(bytes.NewReader(make([]byte, 64)))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestLoadFromMissingFile(t *testing.T) {
	db := New()
	err := db.LoadFrom(filepath.Join(t.TempDir(), "absent.cdb"))
	assert.ErrorIs(t, err, ErrIO)
	assert.NotEmpty(t, db.LastError())
}

func TestSaveUsesRememberedPath(t *testing.T) {
	db := New()
	require.NoError(t, db.AddColumn("a", column.Int32))

	// No path yet.
	assert.ErrorIs(t, db.Save(), ErrInvalidArgument)

	path := filepath.Join(t.TempDir(), "db.cdb")
	require.NoError(t, db.SaveTo(path))

	require.NoError(t, db.InsertInt32("a", 42))
	require.NoError(t, db.Save())

	loaded, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.NumRows())
}

func TestGrowthThroughDatabase(t *testing.T) {
	db := New()
	require.NoError(t, db.AddColumn("v", column.Int64))
	for i := int64(0); i < 25; i++ {
		require.NoError(t, db.InsertInt64("v", i))
	}

	c, _ := db.Column("v")
	require.Equal(t, 25, c.Len())
	for i := int64(0); i < 25; i++ {
		assert.Equal(t, i, c.Int64(int(i)))
	}
}

func TestVerifyChecksumsOption(t *testing.T) {
	db := buildSample(t)
	var buf bytes.Buffer
	require.NoError(t, db.Snapshot(&buf))

	raw := buf.Bytes()
	raw[len(raw)-20] ^= 0xff // corrupt a data byte near the footer

	err := New().Restore(bytes.NewReader(raw))
	require.ErrorIs(t, err, ErrFormat)

	relaxed := New(WithVerifyChecksums(false))
	assert.NoError(t, relaxed.Restore(bytes.NewReader(raw)))
}

func TestNullRowsSurviveRoundTrip(t *testing.T) {
	db := New()
	require.NoError(t, db.AddColumn("v", column.Float64))
	for i := 0; i < 25; i++ {
		if i%2 == 0 {
			require.NoError(t, db.InsertNull("v"))
		} else {
			require.NoError(t, db.InsertFloat64("v", float64(i)))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, db.Snapshot(&buf))
	loaded := New()
	require.NoError(t, loaded.Restore(&buf))

	c, _ := loaded.Column("v")
	assert.Equal(t, 13, c.NullCount())
	rs := c.NullRows()
	assert.Equal(t, uint64(13), rs.Cardinality())
	for i := 0; i < 25; i++ {
		assert.Equal(t, i%2 == 0, rs.Contains(i), "row %d", i)
	}
}
