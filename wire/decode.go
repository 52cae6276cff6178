// Package wire implements the IDO binary codec: a bounds-checked
// cursor over byte buffers, the decoder from bytes to ir documents,
// and the encoder back. The codec is driven entirely by the length
// and count fields embedded in the stream; it never infers structure
// from context, and any framing violation is fatal.
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/signadot/ido-format/go-ido/ir"
	"github.com/signadot/ido-format/go-ido/layout"
)

// Scalar kind bytes. Protocol constants; changing them breaks
// compatibility with captured files.
const (
	kindI8    = 0x01
	kindI16   = 0x02
	kindI32   = 0x03
	kindI64   = 0x04
	kindU8    = 0x11
	kindU16   = 0x12
	kindU32   = 0x13
	kindU64   = 0x14
	kindF32   = 0x21
	kindF64   = 0x22
	kindBool  = 0x31
	kindStr   = 0x41
	kindBytes = 0x42
	kindCStr  = 0x43
)

type decOpts struct {
	table *layout.Table
}

type DecodeOption func(*decOpts)

func WithTable(t *layout.Table) DecodeOption {
	return func(o *decOpts) {
		if t != nil {
			o.table = t
		}
	}
}

// Decode reads a complete .ido file. Offsets in returned errors are
// file offsets for the header and, for the body, offsets into the
// uncompressed body stream.
func Decode(d []byte, opts ...DecodeOption) (*ir.Document, error) {
	o := &decOpts{table: layout.Builtin()}
	for _, f := range opts {
		f(o)
	}
	r := NewReader(d, binary.LittleEndian)
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	body := d[headerLen:]
	if h.flags&ir.FlagCompressed != 0 {
		if body, err = inflate(body); err != nil {
			return nil, err
		}
	}
	if len(body) < int(h.bodyLen) {
		return nil, errAt(len(body), ErrTruncatedInput)
	}
	if len(body) > int(h.bodyLen) {
		return nil, errAt(int(h.bodyLen), ErrTrailingBytes)
	}
	dec := &decoder{
		table:  o.table,
		korean: h.flags&ir.FlagKorean != 0,
	}
	br := NewReader(body, binary.LittleEndian)
	root, err := dec.node(br)
	if err != nil {
		return nil, err
	}
	if br.Remaining() != 0 {
		return nil, errAt(br.Off(), ErrTrailingBytes)
	}
	return &ir.Document{
		Version:  h.version,
		Flags:    h.flags,
		Reserved: h.reserved,
		Root:     root,
	}, nil
}

func inflate(d []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(d))
	if err != nil {
		return nil, errAt(headerLen, fmt.Errorf("%w: zlib: %v", ErrTruncatedInput, err))
	}
	defer zr.Close()
	body, err := io.ReadAll(zr)
	if err != nil {
		return nil, errAt(headerLen, fmt.Errorf("%w: zlib: %v", ErrTruncatedInput, err))
	}
	return body, nil
}

type decoder struct {
	table  *layout.Table
	korean bool
}

// node reads one tag/size-framed node plus its trailing alignment
// padding. Unknown tags are captured whole; their framing is the only
// thing the decoder needs to understand.
func (dec *decoder) node(r *Reader) (*ir.Node, error) {
	tag, err := r.U16()
	if err != nil {
		return nil, err
	}
	size, err := r.U32()
	if err != nil {
		return nil, err
	}
	sub, err := r.Sub(int(size))
	if err != nil {
		return nil, err
	}
	var node *ir.Node
	if dec.table.Known(tag) {
		if node, err = dec.body(tag, sub); err != nil {
			return nil, err
		}
		if sub.Remaining() != 0 {
			return nil, errAt(sub.Off(), ErrLengthMismatch)
		}
	} else {
		blob, err := sub.Bytes(int(size))
		if err != nil {
			return nil, err
		}
		node = ir.FromBlob(tag, blob)
	}
	pad, err := r.AlignTo(nodeAlign)
	if err != nil {
		return nil, err
	}
	node.Pad = normalizePad(pad)
	return node, nil
}

func (dec *decoder) body(tag uint16, r *Reader) (*ir.Node, error) {
	node := ir.NewContainer(tag)
	attrCount, err := r.U16()
	if err != nil {
		return nil, err
	}
	for range attrCount {
		name, err := r.U8()
		if err != nil {
			return nil, err
		}
		nameBytes, err := r.Bytes(int(name))
		if err != nil {
			return nil, err
		}
		val, err := dec.scalar(r)
		if err != nil {
			return nil, err
		}
		nameStr, raw := ir.DecodeString(nameBytes, dec.korean)
		if raw != nil {
			return nil, errAt(r.Off(), fmt.Errorf("%w: undecodable attribute name", ErrBadKind))
		}
		node.SetAttr(nameStr, val)
	}
	childCount, err := r.U16()
	if err != nil {
		return nil, err
	}
	for range childCount {
		child, err := dec.node(r)
		if err != nil {
			return nil, err
		}
		node.AppendChild(child)
	}
	return node, nil
}

func (dec *decoder) scalar(r *Reader) (*ir.Node, error) {
	off := r.Off()
	k, err := r.U8()
	if err != nil {
		return nil, err
	}
	switch k {
	case kindI8:
		v, err := r.I8()
		return ir.FromInt(int64(v), 8), err
	case kindI16:
		v, err := r.I16()
		return ir.FromInt(int64(v), 16), err
	case kindI32:
		v, err := r.I32()
		return ir.FromInt(int64(v), 32), err
	case kindI64:
		v, err := r.I64()
		return ir.FromInt(v, 64), err
	case kindU8:
		v, err := r.U8()
		return ir.FromUint(uint64(v), 8), err
	case kindU16:
		v, err := r.U16()
		return ir.FromUint(uint64(v), 16), err
	case kindU32:
		v, err := r.U32()
		return ir.FromUint(uint64(v), 32), err
	case kindU64:
		v, err := r.U64()
		return ir.FromUint(v, 64), err
	case kindF32:
		v, err := r.F32()
		return ir.FromFloat(float64(v), 32), err
	case kindF64:
		v, err := r.F64()
		return ir.FromFloat(v, 64), err
	case kindBool:
		v, err := r.U8()
		if err != nil {
			return nil, err
		}
		if v > 1 {
			// anything else could not be re-encoded identically
			return nil, errAt(off, fmt.Errorf("%w: bool byte 0x%02x", ErrBadKind, v))
		}
		return ir.FromBool(v == 1), nil
	case kindStr:
		b, err := r.String16()
		if err != nil {
			return nil, err
		}
		s, raw := ir.DecodeString(b, dec.korean)
		node := ir.FromString(s)
		node.Raw = raw
		return node, nil
	case kindCStr:
		b, err := r.CString()
		if err != nil {
			return nil, err
		}
		s, raw := ir.DecodeString(b, dec.korean)
		node := ir.FromCString(s)
		node.Raw = raw
		return node, nil
	case kindBytes:
		b, err := r.String16()
		return ir.FromBytes(b), err
	default:
		return nil, errAt(off, fmt.Errorf("%w: 0x%02x", ErrBadKind, k))
	}
}

// normalizePad drops all-zero padding so the canonical form (zeros,
// re-derived on encode) and a parsed text form with no pad attribute
// compare equal. Nonzero padding is preserved verbatim.
func normalizePad(pad []byte) []byte {
	for _, b := range pad {
		if b != 0 {
			return pad
		}
	}
	return nil
}
