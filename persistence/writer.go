package persistence

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Writer encodes the .cdb format onto an io.Writer. It tracks the byte
// offset of the stream so the footer can record the final file size, and
// runs every byte through a CRC32 so the footer checksum covers the whole
// file.
//
// Callers write, in order: header, one metadata block per column, then one
// data section plus NULL bitmap per column, then the footer.
type Writer struct {
	w      io.Writer
	sum    *ChecksumWriter
	offset uint64
}

// NewWriter creates a new .cdb writer.
func NewWriter(w io.Writer) *Writer {
	cw := NewChecksumWriter(w)
	return &Writer{w: cw, sum: cw}
}

// Offset returns the number of bytes written so far.
func (bw *Writer) Offset() uint64 {
	return bw.offset
}

func (bw *Writer) write(b []byte) error {
	if _, err := bw.w.Write(b); err != nil {
		return err
	}
	bw.offset += uint64(len(b))
	return nil
}

// WriteHeader writes the file header. Magic, version, and the header
// checksum are filled in; the caller provides counts, timestamp, and flags.
func (bw *Writer) WriteHeader(h *FileHeader) error {
	h.Magic = MagicHeader
	h.Version = Version

	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:], h.Magic)
	binary.LittleEndian.PutUint32(buf[4:], h.Version)
	binary.LittleEndian.PutUint32(buf[8:], h.NumColumns)
	binary.LittleEndian.PutUint32(buf[12:], h.NumRows)
	binary.LittleEndian.PutUint64(buf[16:], h.Timestamp)
	binary.LittleEndian.PutUint32(buf[24:], h.Flags)
	h.HeaderChecksum = Checksum(buf[:headerChecksumOffset])
	binary.LittleEndian.PutUint32(buf[headerChecksumOffset:], h.HeaderChecksum)

	return bw.write(buf)
}

// WriteColumnMeta writes one per-column metadata block.
func (bw *Writer) WriteColumnMeta(m *ColumnMeta) error {
	if len(m.Name) > math.MaxUint16 {
		return fmt.Errorf("%w: %d bytes", ErrNameTooLong, len(m.Name))
	}

	buf := make([]byte, 0, m.EncodedSize())
	buf = append(buf, m.Type)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(m.Name)))
	buf = append(buf, m.Name...)
	buf = binary.LittleEndian.AppendUint64(buf, m.DataOffset)
	buf = binary.LittleEndian.AppendUint64(buf, m.DataSize)
	buf = binary.LittleEndian.AppendUint64(buf, m.NullBitmapSize)

	return bw.write(buf)
}

// WriteInt32s writes a dense little-endian array of int32 elements.
func (bw *Writer) WriteInt32s(v []int32) error {
	buf := make([]byte, len(v)*4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(x))
	}
	return bw.write(buf)
}

// WriteInt64s writes a dense little-endian array of int64 elements.
func (bw *Writer) WriteInt64s(v []int64) error {
	buf := make([]byte, len(v)*8)
	for i, x := range v {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(x))
	}
	return bw.write(buf)
}

// WriteFloat32s writes a dense array of IEEE-754 float32 elements.
func (bw *Writer) WriteFloat32s(v []float32) error {
	buf := make([]byte, len(v)*4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(x))
	}
	return bw.write(buf)
}

// WriteFloat64s writes a dense array of IEEE-754 float64 elements.
func (bw *Writer) WriteFloat64s(v []float64) error {
	buf := make([]byte, len(v)*8)
	for i, x := range v {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(x))
	}
	return bw.write(buf)
}

// WriteBools writes a dense array of booleans, one byte per element.
func (bw *Writer) WriteBools(v []bool) error {
	buf := make([]byte, len(v))
	for i, x := range v {
		if x {
			buf[i] = 1
		}
	}
	return bw.write(buf)
}

// WriteStrings writes length-prefixed strings: u32 byte length then
// payload, per row. A zero length encodes both the empty string and a NULL
// row; NULL-ness is carried by the bitmap, not the data section.
func (bw *Writer) WriteStrings(v []string) error {
	buf := make([]byte, 0, StringsSize(v))
	for _, s := range v {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s)))
		buf = append(buf, s...)
	}
	return bw.write(buf)
}

// WriteNullBitmap writes a column's serialized NULL bitmap.
func (bw *Writer) WriteNullBitmap(bits []byte) error {
	return bw.write(bits)
}

// WriteFooter closes the file: footer magic, total file size, and the
// CRC32 of every byte written before the checksum field.
func (bw *Writer) WriteFooter() error {
	fileSize := bw.offset + FooterSize

	buf := make([]byte, FooterSize-4)
	binary.LittleEndian.PutUint32(buf[0:], MagicFooter)
	binary.LittleEndian.PutUint64(buf[4:], fileSize)
	if err := bw.write(buf); err != nil {
		return err
	}

	var sum [4]byte
	binary.LittleEndian.PutUint32(sum[:], bw.sum.Sum())
	return bw.write(sum[:])
}
