// Package persistence implements the .cdb binary file format: a fixed
// header, per-column metadata blocks, per-column data plus NULL bitmap
// sections in schema order, and a footer.
//
// All integers are little-endian. Version 1 files reserve the header and
// file checksum fields as zero; version 2 populates both with CRC32 (IEEE)
// and the reader verifies them. The reader accepts both versions.
package persistence

import "errors"

const (
	// MagicHeader identifies .cdb files ("CDB\x01").
	MagicHeader = 0x43444201
	// MagicFooter marks the start of the footer ("CDBE").
	MagicFooter = 0x43444245

	// VersionLegacy is the original format revision: identical layout,
	// checksum fields written as zero and never verified.
	VersionLegacy = 1
	// Version is the current format revision, with real checksums.
	Version = 2

	// HeaderSize is the fixed byte size of the file header.
	HeaderSize = 32
	// FooterSize is the fixed byte size of the file footer.
	FooterSize = 16

	// headerChecksumOffset is where the header checksum field starts;
	// the header CRC covers everything before it.
	headerChecksumOffset = 28

	// maxStringLen bounds a single string element, guarding allocation
	// on corrupt length prefixes.
	maxStringLen = 1 << 30
)

var (
	// ErrInvalidMagic indicates the stream does not start with the .cdb
	// header magic.
	ErrInvalidMagic = errors.New("invalid magic number")
	// ErrInvalidVersion indicates an unsupported format revision.
	ErrInvalidVersion = errors.New("unsupported format version")
	// ErrCorrupted indicates truncated input or malformed structure.
	ErrCorrupted = errors.New("corrupted file")
	// ErrNameTooLong indicates a column name exceeding the u16 length
	// prefix of the metadata block.
	ErrNameTooLong = errors.New("column name too long")
)

// FileHeader is the 32-byte header at the start of every .cdb file.
//
// NumRows is taken from the first column at write time; the reader trusts
// it for every column and ignores the per-column sizes.
type FileHeader struct {
	Magic          uint32
	Version        uint32
	NumColumns     uint32
	NumRows        uint32
	Timestamp      uint64 // Unix seconds at write time
	Flags          uint32 // reserved, zero
	HeaderChecksum uint32 // CRC32 of the preceding 28 bytes (version >= 2)
}

// ColumnMeta is one per-column metadata block. DataOffset and DataSize are
// computed at write time for external tooling; the reader relies on stream
// position and the header row count instead.
type ColumnMeta struct {
	Type           uint8 // wire type tag, see package column
	Name           string
	DataOffset     uint64
	DataSize       uint64
	NullBitmapSize uint64
}

// EncodedSize returns the byte size of the metadata block on disk.
func (m *ColumnMeta) EncodedSize() uint64 {
	return 1 + 2 + uint64(len(m.Name)) + 8 + 8 + 8
}

// Footer is the 16-byte trailer closing every .cdb file.
type Footer struct {
	Magic    uint32
	FileSize uint64 // total file size including the footer itself
	Checksum uint32 // CRC32 of every preceding byte (version >= 2)
}

// StringsSize returns the encoded byte size of a string column's data
// section: a u32 length prefix plus payload per row.
func StringsSize(v []string) uint64 {
	n := uint64(0)
	for _, s := range v {
		n += 4 + uint64(len(s))
	}
	return n
}
