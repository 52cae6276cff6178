package wire

// The header layout is a contract recovered from captured .ido files.
// Any deviation is a hard decode failure, never a guess.
//
//	off 0  magic "IDO\x1a" (4 bytes)
//	off 4  version u16, little-endian
//	off 6  flags u16 (ir.FlagCompressed, ir.FlagKorean; other bits opaque)
//	off 8  bodyLen u32, length of the uncompressed body
//	off 12 reserved u32, opaque, preserved verbatim
var magic = []byte{'I', 'D', 'O', 0x1a}

const (
	headerLen      = 16
	bodyLenOff     = 8
	currentVersion = 1
	nodeAlign      = 4
)

// Sniff reports whether d starts with the container magic.
func Sniff(d []byte) bool {
	if len(d) < len(magic) {
		return false
	}
	for i := range magic {
		if d[i] != magic[i] {
			return false
		}
	}
	return true
}

type header struct {
	version  uint16
	flags    uint16
	bodyLen  uint32
	reserved uint32
}

func readHeader(r *Reader) (*header, error) {
	m, err := r.Bytes(len(magic))
	if err != nil {
		return nil, errAt(0, ErrTruncatedInput)
	}
	for i := range magic {
		if m[i] != magic[i] {
			return nil, errAt(i, ErrBadMagic)
		}
	}
	h := &header{}
	if h.version, err = r.U16(); err != nil {
		return nil, errAt(r.Off(), ErrTruncatedInput)
	}
	if h.version != currentVersion {
		return nil, errAt(4, ErrUnsupportedVersion)
	}
	if h.flags, err = r.U16(); err != nil {
		return nil, errAt(r.Off(), ErrTruncatedInput)
	}
	if h.bodyLen, err = r.U32(); err != nil {
		return nil, errAt(r.Off(), ErrTruncatedInput)
	}
	if h.reserved, err = r.U32(); err != nil {
		return nil, errAt(r.Off(), ErrTruncatedInput)
	}
	return h, nil
}

func writeHeader(w *Writer, h *header) {
	w.Write(magic)
	w.U16(h.version)
	w.U16(h.flags)
	w.U32(h.bodyLen)
	w.U32(h.reserved)
}
