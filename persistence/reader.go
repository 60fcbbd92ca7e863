package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/praba230890/columndb/internal/nullmask"
)

// Reader decodes the .cdb format from an io.Reader. It never seeks: the
// per-column offsets in the metadata blocks are ignored and the stream is
// consumed strictly in order. Short reads surface as ErrCorrupted.
type Reader struct {
	r       io.Reader
	sum     *ChecksumReader
	version uint32
	verify  bool
}

// NewReader creates a new .cdb reader. Checksum verification is enabled by
// default and applies to version 2 files only; version 1 files carry
// reserved-zero checksums that are never compared.
func NewReader(r io.Reader) *Reader {
	cr := NewChecksumReader(r)
	return &Reader{r: cr, sum: cr, verify: true}
}

// SetVerify enables or disables checksum verification.
func (br *Reader) SetVerify(v bool) {
	br.verify = v
}

func (br *Reader) read(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(br.r, buf); err != nil {
		return nil, corrupt(err)
	}
	return buf, nil
}

func corrupt(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: unexpected end of file", ErrCorrupted)
	}
	return err
}

// ReadHeader reads and validates the file header.
func (br *Reader) ReadHeader() (*FileHeader, error) {
	buf, err := br.read(HeaderSize)
	if err != nil {
		return nil, err
	}

	h := &FileHeader{
		Magic:          binary.LittleEndian.Uint32(buf[0:]),
		Version:        binary.LittleEndian.Uint32(buf[4:]),
		NumColumns:     binary.LittleEndian.Uint32(buf[8:]),
		NumRows:        binary.LittleEndian.Uint32(buf[12:]),
		Timestamp:      binary.LittleEndian.Uint64(buf[16:]),
		Flags:          binary.LittleEndian.Uint32(buf[24:]),
		HeaderChecksum: binary.LittleEndian.Uint32(buf[headerChecksumOffset:]),
	}

	if h.Magic != MagicHeader {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, h.Magic)
	}
	if h.Version != VersionLegacy && h.Version != Version {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidVersion, h.Version)
	}
	br.version = h.Version

	if h.Version >= Version && br.verify {
		if sum := Checksum(buf[:headerChecksumOffset]); sum != h.HeaderChecksum {
			return nil, &ChecksumMismatchError{Section: "header", Expected: h.HeaderChecksum, Actual: sum}
		}
	}
	return h, nil
}

// ReadColumnMeta reads one per-column metadata block.
func (br *Reader) ReadColumnMeta() (*ColumnMeta, error) {
	head, err := br.read(3)
	if err != nil {
		return nil, err
	}
	m := &ColumnMeta{Type: head[0]}

	nameLen := int(binary.LittleEndian.Uint16(head[1:]))
	name, err := br.read(nameLen)
	if err != nil {
		return nil, err
	}
	m.Name = string(name)

	tail, err := br.read(24)
	if err != nil {
		return nil, err
	}
	m.DataOffset = binary.LittleEndian.Uint64(tail[0:])
	m.DataSize = binary.LittleEndian.Uint64(tail[8:])
	m.NullBitmapSize = binary.LittleEndian.Uint64(tail[16:])
	return m, nil
}

// ReadInt32s reads a dense array of count int32 elements.
func (br *Reader) ReadInt32s(count int) ([]int32, error) {
	buf, err := br.read(count * 4)
	if err != nil {
		return nil, err
	}
	v := make([]int32, count)
	for i := range v {
		v[i] = int32(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return v, nil
}

// ReadInt64s reads a dense array of count int64 elements.
func (br *Reader) ReadInt64s(count int) ([]int64, error) {
	buf, err := br.read(count * 8)
	if err != nil {
		return nil, err
	}
	v := make([]int64, count)
	for i := range v {
		v[i] = int64(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return v, nil
}

// ReadFloat32s reads a dense array of count float32 elements.
func (br *Reader) ReadFloat32s(count int) ([]float32, error) {
	buf, err := br.read(count * 4)
	if err != nil {
		return nil, err
	}
	v := make([]float32, count)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return v, nil
}

// ReadFloat64s reads a dense array of count float64 elements.
func (br *Reader) ReadFloat64s(count int) ([]float64, error) {
	buf, err := br.read(count * 8)
	if err != nil {
		return nil, err
	}
	v := make([]float64, count)
	for i := range v {
		v[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return v, nil
}

// ReadBools reads a dense array of count booleans. Any nonzero byte
// decodes as true.
func (br *Reader) ReadBools(count int) ([]bool, error) {
	buf, err := br.read(count)
	if err != nil {
		return nil, err
	}
	v := make([]bool, count)
	for i := range v {
		v[i] = buf[i] != 0
	}
	return v, nil
}

// ReadStrings reads count length-prefixed strings.
func (br *Reader) ReadStrings(count int) ([]string, error) {
	v := make([]string, count)
	for i := range v {
		head, err := br.read(4)
		if err != nil {
			return nil, err
		}
		strLen := binary.LittleEndian.Uint32(head)
		if strLen > maxStringLen {
			return nil, fmt.Errorf("%w: string length %d", ErrCorrupted, strLen)
		}
		if strLen == 0 {
			continue
		}
		payload, err := br.read(int(strLen))
		if err != nil {
			return nil, err
		}
		v[i] = string(payload)
	}
	return v, nil
}

// ReadNullBitmap reads the NULL bitmap covering rows rows.
func (br *Reader) ReadNullBitmap(rows int) ([]byte, error) {
	return br.read(nullmask.Size(rows))
}

// ReadFooter reads and validates the footer. For version 2 files it
// compares the stored file checksum against the CRC32 accumulated over
// every byte read before the checksum field.
func (br *Reader) ReadFooter() (*Footer, error) {
	buf, err := br.read(FooterSize - 4)
	if err != nil {
		return nil, err
	}
	f := &Footer{
		Magic:    binary.LittleEndian.Uint32(buf[0:]),
		FileSize: binary.LittleEndian.Uint64(buf[4:]),
	}
	if f.Magic != MagicFooter {
		return nil, fmt.Errorf("%w: bad footer magic 0x%08x", ErrCorrupted, f.Magic)
	}

	// Snapshot the running sum before consuming the checksum field itself.
	sum := br.sum.Sum()

	tail, err := br.read(4)
	if err != nil {
		return nil, err
	}
	f.Checksum = binary.LittleEndian.Uint32(tail)

	if br.version >= Version && br.verify && f.Checksum != sum {
		return nil, &ChecksumMismatchError{Section: "file", Expected: f.Checksum, Actual: sum}
	}
	return f, nil
}
