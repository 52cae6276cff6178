package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestReaderScalars(t *testing.T) {
	w := NewWriter(binary.LittleEndian)
	w.U8(0xab)
	w.U16(0x1234)
	w.U32(0xdeadbeef)
	w.U64(0x0102030405060708)
	w.I16(-2)
	w.F32(1.5)
	w.F64(-0.25)

	r := NewReader(w.Bytes(), binary.LittleEndian)
	if v, err := r.U8(); err != nil || v != 0xab {
		t.Fatalf("U8 = %x, %v", v, err)
	}
	if v, err := r.U16(); err != nil || v != 0x1234 {
		t.Fatalf("U16 = %x, %v", v, err)
	}
	if v, err := r.U32(); err != nil || v != 0xdeadbeef {
		t.Fatalf("U32 = %x, %v", v, err)
	}
	if v, err := r.U64(); err != nil || v != 0x0102030405060708 {
		t.Fatalf("U64 = %x, %v", v, err)
	}
	if v, err := r.I16(); err != nil || v != -2 {
		t.Fatalf("I16 = %d, %v", v, err)
	}
	if v, err := r.F32(); err != nil || v != 1.5 {
		t.Fatalf("F32 = %v, %v", v, err)
	}
	if v, err := r.F64(); err != nil || v != -0.25 {
		t.Fatalf("F64 = %v, %v", v, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("remaining %d", r.Remaining())
	}
}

func TestReaderEOF(t *testing.T) {
	r := NewReader([]byte{1, 2, 3}, binary.LittleEndian)
	if _, err := r.U32(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("U32 past end: %v", err)
	}
	// a failed read must not move the cursor
	if v, err := r.U16(); err != nil || v != 0x0201 {
		t.Fatalf("U16 after failed read = %x, %v", v, err)
	}
	if err := r.Skip(2); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("Skip past end: %v", err)
	}
	var oe *OffsetErr
	_, err := r.Bytes(5)
	if !errors.As(err, &oe) || oe.Off != 2 {
		t.Fatalf("offset not reported: %v", err)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	r := NewReader([]byte{9, 8, 7}, binary.LittleEndian)
	p, err := r.Peek(2)
	if err != nil || !bytes.Equal(p, []byte{9, 8}) {
		t.Fatalf("Peek = %v, %v", p, err)
	}
	if r.Off() != 0 {
		t.Fatal("Peek moved the cursor")
	}
}

func TestCString(t *testing.T) {
	r := NewReader([]byte{'h', 'i', 0, 'x'}, binary.LittleEndian)
	v, err := r.CString()
	if err != nil || string(v) != "hi" {
		t.Fatalf("CString = %q, %v", v, err)
	}
	if r.Off() != 3 {
		t.Fatalf("terminator not consumed, off=%d", r.Off())
	}
	if _, err := r.CString(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("unterminated cstring: %v", err)
	}
}

func TestString16(t *testing.T) {
	w := NewWriter(binary.LittleEndian)
	if err := w.String16([]byte("payload")); err != nil {
		t.Fatal(err)
	}
	r := NewReader(w.Bytes(), binary.LittleEndian)
	v, err := r.String16()
	if err != nil || string(v) != "payload" {
		t.Fatalf("String16 = %q, %v", v, err)
	}
	// declared length beyond the buffer
	r = NewReader([]byte{0xff, 0xff, 'a'}, binary.LittleEndian)
	if _, err := r.String16(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("oversized prefix: %v", err)
	}
}

func TestAlignTo(t *testing.T) {
	r := NewReader([]byte{1, 0, 0, 0, 2}, binary.LittleEndian)
	if _, err := r.U8(); err != nil {
		t.Fatal(err)
	}
	pad, err := r.AlignTo(4)
	if err != nil || !bytes.Equal(pad, []byte{0, 0, 0}) {
		t.Fatalf("AlignTo = %v, %v", pad, err)
	}
	if r.Off() != 4 {
		t.Fatalf("off = %d", r.Off())
	}
	// already aligned: no bytes consumed
	pad, err = r.AlignTo(4)
	if err != nil || pad != nil {
		t.Fatalf("aligned AlignTo = %v, %v", pad, err)
	}
}

func TestSubExactConsumption(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4, 5}, binary.LittleEndian)
	sub, err := r.Sub(3)
	if err != nil {
		t.Fatal(err)
	}
	if r.Off() != 3 {
		t.Fatal("parent did not advance past the sub-block")
	}
	if sub.Off() != 0 || sub.Remaining() != 3 {
		t.Fatalf("sub bounds wrong: off=%d rem=%d", sub.Off(), sub.Remaining())
	}
	if _, err := sub.U16(); err != nil {
		t.Fatal(err)
	}
	if sub.Remaining() != 1 {
		t.Fatal("sub under-consumed tracking broken")
	}
	if _, err := sub.U16(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("sub must not read past its bound: %v", err)
	}
	if _, err := r.Sub(10); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("oversized sub: %v", err)
	}
}

func TestWriterScalarBytes(t *testing.T) {
	w := NewWriter(binary.LittleEndian)
	w.U16(0x0102)
	w.U32(0x03040506)
	w.U64(0x0708090a0b0c0d0e)
	want := []byte{
		2, 1,
		6, 5, 4, 3,
		0xe, 0xd, 0xc, 0xb, 0xa, 9, 8, 7,
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("got % x want % x", w.Bytes(), want)
	}
	b := NewWriter(binary.BigEndian)
	b.U16(0x0102)
	if !bytes.Equal(b.Bytes(), []byte{1, 2}) {
		t.Fatalf("big endian: % x", b.Bytes())
	}
}

func TestWriterPatch(t *testing.T) {
	w := NewWriter(binary.LittleEndian)
	w.U32(0)
	w.Write([]byte("body"))
	if err := w.PatchU32(0, uint32(w.Len()-4)); err != nil {
		t.Fatal(err)
	}
	r := NewReader(w.Bytes(), binary.LittleEndian)
	if v, _ := r.U32(); v != 4 {
		t.Fatalf("patched length = %d", v)
	}
	if err := w.PatchU32(w.Len()-2, 0); err == nil {
		t.Fatal("patch past end accepted")
	}
}

func TestWriterAlignPad(t *testing.T) {
	w := NewWriter(binary.LittleEndian)
	w.U8(1)
	if err := w.AlignTo(4, nil); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(w.Bytes(), []byte{1, 0, 0, 0}) {
		t.Fatalf("zero padding: %x", w.Bytes())
	}
	w = NewWriter(binary.LittleEndian)
	w.U8(1)
	if err := w.AlignTo(4, []byte{7, 8, 9}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(w.Bytes(), []byte{1, 7, 8, 9}) {
		t.Fatalf("captured padding: %x", w.Bytes())
	}
	w = NewWriter(binary.LittleEndian)
	w.U8(1)
	if err := w.AlignTo(4, []byte{7}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("wrong-length pad: %v", err)
	}
}

func TestWriterCStringRejectsNul(t *testing.T) {
	w := NewWriter(binary.LittleEndian)
	if err := w.CString([]byte{'a', 0, 'b'}); err == nil {
		t.Fatal("embedded nul accepted")
	}
}
