// Package endian provides byte-order swapping for multi-byte numeric
// values and helpers for reading and writing swapped values against
// byte slices and streams.
package endian

import (
	"fmt"
	"io"
	"math"
)

// SwapUint16 reverses the byte order of a 16-bit value.
func SwapUint16(v uint16) uint16 {
	return v>>8 | v<<8
}

// SwapUint32 reverses the byte order of a 32-bit value.
func SwapUint32(v uint32) uint32 {
	return v>>24 | v>>8&0x0000ff00 | v<<8&0x00ff0000 | v<<24
}

// SwapUint64 reverses the byte order of a 64-bit value.
func SwapUint64(v uint64) uint64 {
	return v>>56 |
		v>>40&0x000000000000ff00 |
		v>>24&0x0000000000ff0000 |
		v>>8&0x00000000ff000000 |
		v<<8&0x000000ff00000000 |
		v<<24&0x0000ff0000000000 |
		v<<40&0x00ff000000000000 |
		v<<56
}

// SwapInt16 reverses the byte order of a signed 16-bit value.
func SwapInt16(v int16) int16 { return int16(SwapUint16(uint16(v))) }

// SwapInt32 reverses the byte order of a signed 32-bit value.
func SwapInt32(v int32) int32 { return int32(SwapUint32(uint32(v))) }

// SwapInt64 reverses the byte order of a signed 64-bit value.
func SwapInt64(v int64) int64 { return int64(SwapUint64(uint64(v))) }

// SwapFloat32 reverses the byte order of a 32-bit float's bits.
func SwapFloat32(v float32) float32 {
	return math.Float32frombits(SwapUint32(math.Float32bits(v)))
}

// SwapFloat64 reverses the byte order of a 64-bit float's bits.
func SwapFloat64(v float64) float64 {
	return math.Float64frombits(SwapUint64(math.Float64bits(v)))
}

// ReadSwappedUint16 reads a little-endian 16-bit value from buf at off.
func ReadSwappedUint16(buf []byte, off int) uint16 {
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}

// ReadSwappedUint32 reads a little-endian 32-bit value from buf at off.
func ReadSwappedUint32(buf []byte, off int) uint32 {
	return uint32(buf[off]) | uint32(buf[off+1])<<8 | uint32(buf[off+2])<<16 | uint32(buf[off+3])<<24
}

// ReadSwappedUint64 reads a little-endian 64-bit value from buf at off.
func ReadSwappedUint64(buf []byte, off int) uint64 {
	return uint64(ReadSwappedUint32(buf, off)) | uint64(ReadSwappedUint32(buf, off+4))<<32
}

// WriteSwappedUint16 writes a little-endian 16-bit value into buf at off.
func WriteSwappedUint16(buf []byte, off int, v uint16) {
	buf[off] = byte(v)
	buf[off+1] = byte(v >> 8)
}

// WriteSwappedUint32 writes a little-endian 32-bit value into buf at off.
func WriteSwappedUint32(buf []byte, off int, v uint32) {
	buf[off] = byte(v)
	buf[off+1] = byte(v >> 8)
	buf[off+2] = byte(v >> 16)
	buf[off+3] = byte(v >> 24)
}

// WriteSwappedUint64 writes a little-endian 64-bit value into buf at off.
func WriteSwappedUint64(buf []byte, off int, v uint64) {
	WriteSwappedUint32(buf, off, uint32(v))
	WriteSwappedUint32(buf, off+4, uint32(v>>32))
}

// ReadSwappedUint16From reads a little-endian 16-bit value from r.
func ReadSwappedUint16From(r io.Reader) (uint16, error) {
	buf, err := readFull(r, 2)
	if err != nil {
		return 0, err
	}
	return ReadSwappedUint16(buf, 0), nil
}

// ReadSwappedUint32From reads a little-endian 32-bit value from r.
func ReadSwappedUint32From(r io.Reader) (uint32, error) {
	buf, err := readFull(r, 4)
	if err != nil {
		return 0, err
	}
	return ReadSwappedUint32(buf, 0), nil
}

// ReadSwappedUint64From reads a little-endian 64-bit value from r.
func ReadSwappedUint64From(r io.Reader) (uint64, error) {
	buf, err := readFull(r, 8)
	if err != nil {
		return 0, err
	}
	return ReadSwappedUint64(buf, 0), nil
}

// WriteSwappedUint16To writes a little-endian 16-bit value to w.
func WriteSwappedUint16To(w io.Writer, v uint16) error {
	buf := make([]byte, 2)
	WriteSwappedUint16(buf, 0, v)
	_, err := w.Write(buf)
	return err
}

// WriteSwappedUint32To writes a little-endian 32-bit value to w.
func WriteSwappedUint32To(w io.Writer, v uint32) error {
	buf := make([]byte, 4)
	WriteSwappedUint32(buf, 0, v)
	_, err := w.Write(buf)
	return err
}

// WriteSwappedUint64To writes a little-endian 64-bit value to w.
func WriteSwappedUint64To(w io.Writer, v uint64) error {
	buf := make([]byte, 8)
	WriteSwappedUint64(buf, 0, v)
	_, err := w.Write(buf)
	return err
}

func readFull(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("reading %d swapped bytes: %w", n, err)
	}
	return buf, nil
}
