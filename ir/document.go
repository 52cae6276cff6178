package ir

// Header flag bits. Bits not listed here are unassigned but are
// carried through conversion verbatim.
const (
	// FlagCompressed marks a zlib-deflated body.
	FlagCompressed uint16 = 1 << 0
	// FlagKorean marks EUC-KR encoded string payloads.
	FlagKorean uint16 = 1 << 1
)

// Document is a decoded IDO file: the header fields that must survive
// conversion plus the root node of the body.
type Document struct {
	Version  uint16
	Flags    uint16
	Reserved uint32
	Root     *Node
}

func (d *Document) Compressed() bool {
	return d.Flags&FlagCompressed != 0
}

func (d *Document) Korean() bool {
	return d.Flags&FlagKorean != 0
}

// Equal reports structural equality, header fields included.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.Version != o.Version || d.Flags != o.Flags || d.Reserved != o.Reserved {
		return false
	}
	return Compare(d.Root, o.Root) == 0
}
