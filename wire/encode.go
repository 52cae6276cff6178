package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/zlib"

	"github.com/signadot/ido-format/go-ido/ir"
)

// Encode writes a document back to .ido bytes. The walk order and
// framing mirror Decode exactly; blob and padding captures are
// re-emitted verbatim, which is what makes the round trip exact for
// content the codec does not interpret.
//
// Compressed bodies are deflated at the default level. zlib has no
// canonical encoding, so for compressed inputs byte identity holds at
// the uncompressed-body level, not the file level.
func Encode(doc *ir.Document, opts ...EncodeOption) ([]byte, error) {
	o := &encOpts{}
	for _, f := range opts {
		f(o)
	}
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("%w: nil document", ErrEncode)
	}
	if doc.Version != currentVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	enc := &encoder{korean: doc.Korean()}
	bw := NewWriter(binary.LittleEndian)
	if err := enc.node(bw, doc.Root); err != nil {
		return nil, err
	}
	body := bw.Bytes()

	w := NewWriter(binary.LittleEndian)
	writeHeader(w, &header{
		version:  doc.Version,
		flags:    doc.Flags,
		bodyLen:  uint32(len(body)),
		reserved: doc.Reserved,
	})
	if doc.Compressed() {
		var zbuf bytes.Buffer
		zw, err := zlib.NewWriterLevel(&zbuf, zlib.DefaultCompression)
		if err != nil {
			return nil, fmt.Errorf("%w: zlib: %v", ErrEncode, err)
		}
		if _, err := zw.Write(body); err != nil {
			return nil, fmt.Errorf("%w: zlib: %v", ErrEncode, err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("%w: zlib: %v", ErrEncode, err)
		}
		body = zbuf.Bytes()
	}
	w.Write(body)
	return w.Bytes(), nil
}

type encOpts struct{}

type EncodeOption func(*encOpts)

type encoder struct {
	korean bool
}

// node writes tag, a size field backpatched after the body is known,
// the body, and alignment padding.
func (enc *encoder) node(w *Writer, n *ir.Node) error {
	w.U16(n.Tag)
	sizeOff := w.Len()
	w.U32(0)
	bodyStart := w.Len()
	switch n.Kind {
	case ir.ContainerKind:
		if err := enc.body(w, n); err != nil {
			return err
		}
	case ir.BlobKind:
		w.Write(n.Blob)
	default:
		return fmt.Errorf("%w: %s node outside attribute position", ErrEncode, n.Kind)
	}
	if err := w.PatchU32(sizeOff, uint32(w.Len()-bodyStart)); err != nil {
		return err
	}
	return w.AlignTo(nodeAlign, n.Pad)
}

func (enc *encoder) body(w *Writer, n *ir.Node) error {
	if len(n.Names) > maxCount || len(n.Values) > maxCount {
		return fmt.Errorf("%w: container exceeds u16 count", ErrEncode)
	}
	w.U16(uint16(len(n.Names)))
	for i, name := range n.Names {
		nameBytes, err := ir.EncodeString(name, nil, enc.korean)
		if err != nil {
			return fmt.Errorf("%w: attribute name %q: %v", ErrEncode, name, err)
		}
		if len(nameBytes) > 0xff {
			return fmt.Errorf("%w: attribute name %q exceeds u8 length", ErrEncode, name)
		}
		w.U8(uint8(len(nameBytes)))
		w.Write(nameBytes)
		if err := enc.scalar(w, n.Attrs[i]); err != nil {
			return err
		}
	}
	w.U16(uint16(len(n.Values)))
	for _, c := range n.Values {
		if err := enc.node(w, c); err != nil {
			return err
		}
	}
	return nil
}

func (enc *encoder) scalar(w *Writer, n *ir.Node) error {
	switch n.Kind {
	case ir.IntKind:
		v := int64(0)
		if n.Int64 != nil {
			v = *n.Int64
		}
		switch n.Width {
		case 8:
			w.U8(kindI8)
			w.I8(int8(v))
		case 16:
			w.U8(kindI16)
			w.I16(int16(v))
		case 32:
			w.U8(kindI32)
			w.I32(int32(v))
		case 64:
			w.U8(kindI64)
			w.I64(v)
		default:
			return fmt.Errorf("%w: int width %d", ErrEncode, n.Width)
		}
	case ir.UintKind:
		v := uint64(0)
		if n.Uint64 != nil {
			v = *n.Uint64
		}
		switch n.Width {
		case 8:
			w.U8(kindU8)
			w.U8(uint8(v))
		case 16:
			w.U8(kindU16)
			w.U16(uint16(v))
		case 32:
			w.U8(kindU32)
			w.U32(uint32(v))
		case 64:
			w.U8(kindU64)
			w.U64(v)
		default:
			return fmt.Errorf("%w: uint width %d", ErrEncode, n.Width)
		}
	case ir.FloatKind:
		v := float64(0)
		if n.Float64 != nil {
			v = *n.Float64
		}
		switch n.Width {
		case 32:
			w.U8(kindF32)
			w.F32(float32(v))
		case 64:
			w.U8(kindF64)
			w.F64(v)
		default:
			return fmt.Errorf("%w: float width %d", ErrEncode, n.Width)
		}
	case ir.BoolKind:
		w.U8(kindBool)
		if n.Bool {
			w.U8(1)
		} else {
			w.U8(0)
		}
	case ir.StringKind:
		b, err := ir.EncodeString(n.String, n.Raw, enc.korean)
		if err != nil {
			return fmt.Errorf("%w: string %q: %v", ErrEncode, n.String, err)
		}
		if n.Nul {
			w.U8(kindCStr)
			return w.CString(b)
		}
		w.U8(kindStr)
		return w.String16(b)
	case ir.BytesKind:
		w.U8(kindBytes)
		return w.String16(n.Bytes)
	default:
		return fmt.Errorf("%w: %s node in attribute position", ErrEncode, n.Kind)
	}
	return nil
}

const maxCount = 0xffff
