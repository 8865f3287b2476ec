package inotify

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// headerSize is the fixed part of an inotify wire record: wd (int32)
// followed by mask, cookie and name length (uint32 each).
const headerSize = 16

// ErrTruncated reports a buffer that ends mid-record. The kernel only ever
// returns whole records from a read, so a truncated buffer means the read
// contract was violated and the caller must treat it as fatal.
var ErrTruncated = errors.New("truncated inotify event buffer")

// Decoder walks one raw event buffer and yields its records in order.
// It is a single-pass cursor in the style of bufio.Scanner: call Next
// until it returns false, then check Err. A Decoder never reads past the
// end of the buffer and never yields a partial record.
type Decoder struct {
	buf []byte
	off int
	rec Record
	err error
}

// NewDecoder returns a decoder over a single raw event buffer.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Next advances to the next record. It returns false when the buffer is
// exhausted or malformed; Err distinguishes the two.
func (d *Decoder) Next() bool {
	if d.err != nil || d.off >= len(d.buf) {
		return false
	}

	remaining := len(d.buf) - d.off
	if remaining < headerSize {
		d.err = fmt.Errorf("%w: %d bytes at offset %d, want at least %d", ErrTruncated, remaining, d.off, headerSize)
		return false
	}

	header := d.buf[d.off : d.off+headerSize]
	// Compare in 64 bits so a huge declared length cannot wrap negative on
	// 32-bit platforms and slip past the bound.
	declared := int64(binary.NativeEndian.Uint32(header[12:16]))
	if int64(remaining-headerSize) < declared {
		d.err = fmt.Errorf("%w: record at offset %d declares %d name bytes, %d available", ErrTruncated, d.off, declared, remaining-headerSize)
		return false
	}
	nameLen := int(declared)

	d.rec = Record{
		WD:     int32(binary.NativeEndian.Uint32(header[0:4])),
		Mask:   binary.NativeEndian.Uint32(header[4:8]),
		Cookie: binary.NativeEndian.Uint32(header[8:12]),
		Name:   decodeName(d.buf[d.off+headerSize : d.off+headerSize+nameLen]),
	}
	d.off += headerSize + nameLen
	return true
}

// Record returns the record decoded by the last successful call to Next.
func (d *Decoder) Record() Record {
	return d.rec
}

// Err returns the first decoding error encountered, if any.
func (d *Decoder) Err() error {
	return d.err
}

// decodeName strips the NUL padding the kernel aligns entry names with.
func decodeName(b []byte) string {
	for i := 0; i < len(b); i++ {
		if b[i] == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
