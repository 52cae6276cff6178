package wire

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Reader is a bounds-checked cursor over a byte buffer. The byte
// order is fixed at construction. Position only moves forward; the
// one structured exception is Sub, which bounds a length-prefixed
// sub-block so the caller can verify exact consumption.
type Reader struct {
	d     []byte
	i     int
	base  int // absolute offset of d[0] in the enclosing stream
	order binary.ByteOrder
}

func NewReader(d []byte, order binary.ByteOrder) *Reader {
	return &Reader{d: d, order: order}
}

// Off returns the absolute offset of the cursor in the stream the
// root reader was built over.
func (r *Reader) Off() int { return r.base + r.i }

func (r *Reader) Remaining() int { return len(r.d) - r.i }

func (r *Reader) need(n int) error {
	if n < 0 || r.i+n > len(r.d) {
		return errAt(r.base+r.i, ErrUnexpectedEOF)
	}
	return nil
}

func (r *Reader) U8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.d[r.i]
	r.i++
	return v, nil
}

func (r *Reader) U16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := r.order.Uint16(r.d[r.i:])
	r.i += 2
	return v, nil
}

func (r *Reader) U32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := r.order.Uint32(r.d[r.i:])
	r.i += 4
	return v, nil
}

func (r *Reader) U64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := r.order.Uint64(r.d[r.i:])
	r.i += 8
	return v, nil
}

func (r *Reader) I8() (int8, error) {
	v, err := r.U8()
	return int8(v), err
}

func (r *Reader) I16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

func (r *Reader) I64() (int64, error) {
	v, err := r.U64()
	return int64(v), err
}

func (r *Reader) F32() (float32, error) {
	v, err := r.U32()
	return math.Float32frombits(v), err
}

func (r *Reader) F64() (float64, error) {
	v, err := r.U64()
	return math.Float64frombits(v), err
}

// Bytes consumes and returns a copy of the next n bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	v := append([]byte(nil), r.d[r.i:r.i+n]...)
	r.i += n
	return v, nil
}

// Peek returns the next n bytes without consuming them.
func (r *Reader) Peek(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	return r.d[r.i : r.i+n], nil
}

func (r *Reader) Skip(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.i += n
	return nil
}

// CString consumes bytes up to and including the next nul and returns
// them without the terminator.
func (r *Reader) CString() ([]byte, error) {
	j := bytes.IndexByte(r.d[r.i:], 0)
	if j < 0 {
		return nil, errAt(r.base+len(r.d), ErrUnexpectedEOF)
	}
	v := append([]byte(nil), r.d[r.i:r.i+j]...)
	r.i += j + 1
	return v, nil
}

// String16 reads a u16 length prefix followed by that many payload
// bytes.
func (r *Reader) String16() ([]byte, error) {
	n, err := r.U16()
	if err != nil {
		return nil, err
	}
	return r.Bytes(int(n))
}

// AlignTo advances the cursor to the next multiple of n in absolute
// offset terms, returning the skipped bytes.
func (r *Reader) AlignTo(n int) ([]byte, error) {
	pad := padLen(r.base+r.i, n)
	if pad == 0 {
		return nil, nil
	}
	return r.Bytes(pad)
}

// Sub carves out the next n bytes as a bounded sub-reader and
// advances past them, implementing mark/resume for length-prefixed
// blocks: decode from the sub-reader, then require Remaining() == 0.
func (r *Reader) Sub(n int) (*Reader, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	sub := &Reader{
		d:     r.d[r.i : r.i+n],
		base:  r.base + r.i,
		order: r.order,
	}
	r.i += n
	return sub, nil
}

func padLen(off, n int) int {
	if rem := off % n; rem != 0 {
		return n - rem
	}
	return 0
}
