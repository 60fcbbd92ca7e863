// Package columndb provides an embeddable, in-process columnar data store.
//
// A Database is an ordered, name-addressed set of typed columns. Each
// column is a growable buffer with per-row NULL tracking; values are
// appended column by column, one insert (value or NULL) per logical row.
// The whole database can be snapshotted to a compact binary file (.cdb)
// and reconstructed from it byte-for-byte.
//
// # Quick Start
//
//	db := columndb.New()
//	if err := db.AddColumn("id", column.Int32); err != nil {
//		log.Fatal(err)
//	}
//	if err := db.AddColumn("name", column.String); err != nil {
//		log.Fatal(err)
//	}
//
//	db.InsertInt32("id", 1)
//	db.InsertString("name", "alice")
//	db.InsertInt32("id", 2)
//	db.InsertNull("name")
//
//	if err := db.SaveTo("people.cdb"); err != nil {
//		log.Fatal(err)
//	}
//
//	loaded, err := columndb.Open("people.cdb")
//	if err != nil {
//		log.Fatal(err)
//	}
//	col, _ := loaded.Column("name")
//	fmt.Println(col.StringValue(0)) // "alice"
//
// # Row alignment
//
// The engine does not force equal row counts across columns: callers are
// responsible for inserting exactly once into every column per logical
// row. Database.NumRows is defined as the row count of the first column.
// Saving a ragged database is rejected, since the file format stores a
// single row count.
//
// # Concurrency
//
// Database and Column are not safe for concurrent mutation. One writer at
// a time; any sharing across goroutines requires external synchronization.
package columndb
