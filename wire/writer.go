package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// ByteOrder is the order a Writer emits in; binary.LittleEndian and
// binary.BigEndian both satisfy it.
type ByteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Writer mirrors Reader over an append buffer. Writes cannot fail;
// the operations that validate their input (PatchU32, CString,
// String16, AlignTo) return errors.
type Writer struct {
	buf   []byte
	order ByteOrder
}

func NewWriter(order ByteOrder) *Writer {
	return &Writer{order: order}
}

func (w *Writer) Len() int      { return len(w.buf) }
func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) U8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) U16(v uint16) {
	w.buf = w.order.AppendUint16(w.buf, v)
}

func (w *Writer) U32(v uint32) {
	w.buf = w.order.AppendUint32(w.buf, v)
}

func (w *Writer) U64(v uint64) {
	w.buf = w.order.AppendUint64(w.buf, v)
}

func (w *Writer) I8(v int8)   { w.U8(uint8(v)) }
func (w *Writer) I16(v int16) { w.U16(uint16(v)) }
func (w *Writer) I32(v int32) { w.U32(uint32(v)) }
func (w *Writer) I64(v int64) { w.U64(uint64(v)) }

func (w *Writer) F32(v float32) { w.U32(math.Float32bits(v)) }
func (w *Writer) F64(v float64) { w.U64(math.Float64bits(v)) }

func (w *Writer) Write(d []byte) {
	w.buf = append(w.buf, d...)
}

// CString writes v followed by a nul terminator. v must not itself
// contain a nul, the wire form could not represent it.
func (w *Writer) CString(v []byte) error {
	if bytes.IndexByte(v, 0) >= 0 {
		return fmt.Errorf("%w: nul byte in cstring", ErrEncode)
	}
	w.buf = append(w.buf, v...)
	w.buf = append(w.buf, 0)
	return nil
}

// String16 writes a u16 length prefix followed by v.
func (w *Writer) String16(v []byte) error {
	if len(v) > math.MaxUint16 {
		return fmt.Errorf("%w: string payload %d exceeds u16 length", ErrEncode, len(v))
	}
	w.U16(uint16(len(v)))
	w.buf = append(w.buf, v...)
	return nil
}

// AlignTo pads the buffer to the next multiple of n. A captured pad
// from decoding is re-emitted verbatim when its length matches;
// otherwise zeros are written. A captured pad of the wrong length
// means the tree no longer matches its framing.
func (w *Writer) AlignTo(n int, pad []byte) error {
	need := padLen(len(w.buf), n)
	if len(pad) == 0 {
		w.buf = append(w.buf, make([]byte, need)...)
		return nil
	}
	if len(pad) != need {
		return fmt.Errorf("%w: captured padding is %d bytes, alignment needs %d", ErrLengthMismatch, len(pad), need)
	}
	w.buf = append(w.buf, pad...)
	return nil
}

// PatchU32 overwrites 4 bytes at off, for backpatching length fields
// after their span is known.
func (w *Writer) PatchU32(off int, v uint32) error {
	if off < 0 || off+4 > len(w.buf) {
		return fmt.Errorf("%w: patch at %d outside buffer of %d", ErrEncode, off, len(w.buf))
	}
	w.order.PutUint32(w.buf[off:], v)
	return nil
}
