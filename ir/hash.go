package ir

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/blake3"
)

// Hash returns a blake3 hash of the document's structural value.
// Equal documents hash equal across processes, so hashes can be
// recorded and compared between runs.
// It panics if d is nil.
func (d *Document) Hash() [32]byte {
	if d == nil {
		panic("ir: Hash called on nil document")
	}
	h := blake3.New()
	var hdr [8]byte
	binary.LittleEndian.PutUint16(hdr[0:], d.Version)
	binary.LittleEndian.PutUint16(hdr[2:], d.Flags)
	binary.LittleEndian.PutUint32(hdr[4:], d.Reserved)
	h.Write(hdr[:])
	hashNode(h, d.Root)
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

func hashNode(h *blake3.Hasher, n *Node) {
	if n == nil {
		h.Write([]byte{0xff})
		return
	}
	var b [8]byte
	h.Write([]byte{byte(n.Kind)})
	binary.LittleEndian.PutUint16(b[:2], n.Tag)
	h.Write(b[:2])
	hashBytes(h, n.Pad)

	switch n.Kind {
	case ContainerKind:
		binary.LittleEndian.PutUint32(b[:4], uint32(len(n.Names)))
		h.Write(b[:4])
		for i, name := range n.Names {
			hashBytes(h, []byte(name))
			hashNode(h, n.Attrs[i])
		}
		binary.LittleEndian.PutUint32(b[:4], uint32(len(n.Values)))
		h.Write(b[:4])
		for _, c := range n.Values {
			hashNode(h, c)
		}
	case IntKind:
		h.Write([]byte{byte(n.Width)})
		binary.LittleEndian.PutUint64(b[:], uint64(int64Of(n)))
		h.Write(b[:])
	case UintKind:
		h.Write([]byte{byte(n.Width)})
		binary.LittleEndian.PutUint64(b[:], uint64Of(n))
		h.Write(b[:])
	case FloatKind:
		h.Write([]byte{byte(n.Width)})
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(float64Of(n)))
		h.Write(b[:])
	case StringKind:
		if n.Nul {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
		hashBytes(h, []byte(n.String))
		hashBytes(h, n.Raw)
	case BoolKind:
		if n.Bool {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	case BytesKind:
		hashBytes(h, n.Bytes)
	case BlobKind:
		hashBytes(h, n.Blob)
	}
}

func hashBytes(h *blake3.Hasher, d []byte) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(len(d)))
	h.Write(b[:])
	h.Write(d)
}
